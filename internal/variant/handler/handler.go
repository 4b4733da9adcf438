package handler

import (
	"net/http"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/transport/rest"
	"github.com/fekuna/omnipos-catalog-service/internal/variant"
	"github.com/fekuna/omnipos-catalog-service/internal/variant/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const msgRequired = "Price, SKU, and productId are required"

type VariantHandler struct {
	uc     variant.UseCase
	logger logger.ZapLogger
}

func NewVariantHandler(uc variant.UseCase, log logger.ZapLogger) *VariantHandler {
	return &VariantHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *VariantHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/variants")
	g.GET("/product/:productId", h.ListVariantsByProduct)
	g.GET("/:id", h.GetVariant)
	g.POST("", h.CreateVariant)
	g.PUT("/:id", h.UpdateVariant)
	g.DELETE("/:id", h.DeleteVariant)
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var req v1.CreateVariantRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create variant")
		return
	}

	v, err := h.uc.CreateVariant(c.Request.Context(), &dto.CreateVariantInput{
		Size:      req.Size,
		Color:     req.Color,
		Price:     req.Price,
		Stock:     req.Stock,
		SKU:       req.SKU,
		ProductID: req.ProductID,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create variant")
		return
	}
	c.JSON(http.StatusCreated, rest.ToVariant(v))
}

func (h *VariantHandler) ListVariantsByProduct(c *gin.Context) {
	variants, err := h.uc.ListVariantsByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch variants")
		return
	}
	c.JSON(http.StatusOK, rest.ToVariants(variants))
}

func (h *VariantHandler) GetVariant(c *gin.Context) {
	v, err := h.uc.GetVariant(c.Request.Context(), c.Param("id"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch variant")
		return
	}
	c.JSON(http.StatusOK, rest.ToVariant(v))
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	var req v1.UpdateVariantRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update variant")
		return
	}

	v, err := h.uc.UpdateVariant(c.Request.Context(), &dto.UpdateVariantInput{
		ID:    c.Param("id"),
		Size:  req.Size,
		Color: req.Color,
		Price: req.Price,
		Stock: req.Stock,
		SKU:   req.SKU,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update variant")
		return
	}
	c.JSON(http.StatusOK, rest.ToVariant(v))
}

func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	if err := h.uc.DeleteVariant(c.Request.Context(), c.Param("id")); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to delete variant")
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "Variant deleted successfully"})
}
