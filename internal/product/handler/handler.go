package handler

import (
	"net/http"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/transport/rest"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const msgRequired = "Name and productTypeId are required"

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.GET("", h.ListProducts)
	g.GET("/search", h.SearchProducts)
	g.GET("/by-type/:typeName", h.ListProductsByType)
	g.GET("/:id", h.GetProduct)
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req v1.CreateProductRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create product")
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Images:        req.Images,
		ProductTypeID: req.ProductTypeID,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, rest.ToProduct(p))
}

// ListProducts accepts an optional ?type= filter on the product type name.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{TypeName: c.Query("type")})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, rest.ToProducts(products))
}

func (h *ProductHandler) ListProductsByType(c *gin.Context) {
	products, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{TypeName: c.Param("typeName")})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch products by type")
		return
	}
	c.JSON(http.StatusOK, rest.ToProducts(products))
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.uc.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to search products")
		return
	}
	c.JSON(http.StatusOK, rest.ToProducts(products))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, rest.ToProduct(p))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req v1.UpdateProductRequest
	if err := rest.BindJSON(c, &req, msgRequired); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update product")
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:            c.Param("id"),
		Name:          req.Name,
		Description:   req.Description,
		Images:        req.Images,
		ProductTypeID: req.ProductTypeID,
	})
	if err != nil {
		rest.WriteError(c, h.logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, rest.ToProduct(p))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		rest.WriteError(c, h.logger, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, v1.MessageResponse{Message: "Product deleted successfully"})
}
