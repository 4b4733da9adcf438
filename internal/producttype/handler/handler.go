package handler

import (
	"net/http"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/transport/rest"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductTypeHandler struct {
	uc     producttype.UseCase
	logger logger.ZapLogger
}

func NewProductTypeHandler(uc producttype.UseCase, log logger.ZapLogger) *ProductTypeHandler {
	return &ProductTypeHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductTypeHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/product-types")
	g.GET("", h.ListProductTypes)
	g.GET("/:id", h.GetProductType)
	g.POST("", h.CreateProductType)
	g.PUT("/:id", h.UpdateProductType)
	g.DELETE("/:id", h.DeleteProductType)
}

func (h *ProductTypeHandler) CreateProductType(c *gin.Context) {
	var req v1.CreateProductTypeRequest
	if err := rest.BindJSON(c, &req, "Name is required"); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create product type")
		return
	}

	pt, err := h.uc.CreateProductType(c.Request.Context(), &dto.CreateProductTypeInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create product type")
		return
	}
	c.JSON(http.StatusCreated, rest.ToProductType(pt))
}

func (h *ProductTypeHandler) ListProductTypes(c *gin.Context) {
	types, err := h.uc.ListProductTypes(c.Request.Context())
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch product types")
		return
	}

	out := make([]v1.ProductTypeWithCount, len(types))
	for i := range types {
		out[i] = rest.ToProductTypeWithCount(&types[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductTypeHandler) GetProductType(c *gin.Context) {
	pt, err := h.uc.GetProductType(c.Request.Context(), c.Param("id"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch product type")
		return
	}
	c.JSON(http.StatusOK, rest.ToProductTypeDetail(pt))
}

func (h *ProductTypeHandler) UpdateProductType(c *gin.Context) {
	var req v1.UpdateProductTypeRequest
	if err := rest.BindJSON(c, &req, "Name is required"); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update product type")
		return
	}

	pt, err := h.uc.UpdateProductType(c.Request.Context(), &dto.UpdateProductTypeInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update product type")
		return
	}
	c.JSON(http.StatusOK, rest.ToProductType(pt))
}

func (h *ProductTypeHandler) DeleteProductType(c *gin.Context) {
	if err := h.uc.DeleteProductType(c.Request.Context(), c.Param("id")); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to delete product type")
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "Product type deleted successfully"})
}
