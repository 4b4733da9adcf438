package handler

import (
	"net/http"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/addon"
	"github.com/fekuna/omnipos-catalog-service/internal/addon/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/transport/rest"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const msgRequired = "Name, price, and productId are required"

type AddOnHandler struct {
	uc     addon.UseCase
	logger logger.ZapLogger
}

func NewAddOnHandler(uc addon.UseCase, log logger.ZapLogger) *AddOnHandler {
	return &AddOnHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AddOnHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/add-ons")
	g.GET("/product/:productId", h.ListAddOnsByProduct)
	g.GET("/:id", h.GetAddOn)
	g.POST("", h.CreateAddOn)
	g.PUT("/:id", h.UpdateAddOn)
	g.DELETE("/:id", h.DeleteAddOn)
}

func (h *AddOnHandler) CreateAddOn(c *gin.Context) {
	var req v1.CreateAddOnRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create add-on")
		return
	}

	a, err := h.uc.CreateAddOn(c.Request.Context(), &dto.CreateAddOnInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ProductID:   req.ProductID,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create add-on")
		return
	}
	c.JSON(http.StatusCreated, rest.ToAddOn(a))
}

func (h *AddOnHandler) ListAddOnsByProduct(c *gin.Context) {
	addOns, err := h.uc.ListAddOnsByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch add-ons")
		return
	}
	c.JSON(http.StatusOK, rest.ToAddOns(addOns))
}

func (h *AddOnHandler) GetAddOn(c *gin.Context) {
	a, err := h.uc.GetAddOn(c.Request.Context(), c.Param("id"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch add-on")
		return
	}
	c.JSON(http.StatusOK, rest.ToAddOn(a))
}

func (h *AddOnHandler) UpdateAddOn(c *gin.Context) {
	var req v1.UpdateAddOnRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update add-on")
		return
	}

	a, err := h.uc.UpdateAddOn(c.Request.Context(), &dto.UpdateAddOnInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update add-on")
		return
	}
	c.JSON(http.StatusOK, rest.ToAddOn(a))
}

func (h *AddOnHandler) DeleteAddOn(c *gin.Context) {
	if err := h.uc.DeleteAddOn(c.Request.Context(), c.Param("id")); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to delete add-on")
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "Add-on deleted successfully"})
}
