package v1

import "github.com/shopspring/decimal"

// Update requests use pointer fields: a nil field is left unchanged.

type CreateProductTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateProductTypeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Description   *string  `json:"description"`
	Images        []string `json:"images"`
	ProductTypeID string   `json:"productTypeId" binding:"required"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Images        []string `json:"images"`
	ProductTypeID *string  `json:"productTypeId" binding:"omitempty,min=1"`
}

type CreateVariantRequest struct {
	Size      *string          `json:"size" binding:"omitempty,max=100"`
	Color     *string          `json:"color" binding:"omitempty,max=100"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Stock     *int             `json:"stock" binding:"omitempty,min=0,max=2147483647"`
	SKU       string           `json:"sku" binding:"required,max=100"`
	ProductID string           `json:"productId" binding:"required"`
}

type UpdateVariantRequest struct {
	Size  *string          `json:"size" binding:"omitempty,max=100"`
	Color *string          `json:"color" binding:"omitempty,max=100"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock" binding:"omitempty,min=0,max=2147483647"`
	SKU   *string          `json:"sku" binding:"omitempty,min=1,max=100"`
}

type CreateAddOnRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	ProductID   string           `json:"productId" binding:"required"`
}

type UpdateAddOnRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}
