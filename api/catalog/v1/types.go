// Package v1 holds the JSON contract of the catalog REST API. The server
// binds requests into these types and the client decodes responses from them.
package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductCount struct {
	Products int `json:"products"`
}

// ProductTypeWithCount is an element of the product type list.
type ProductTypeWithCount struct {
	ProductType
	Count ProductCount `json:"_count"`
}

// ProductTypeDetail is a product type with its products, variants and add-ons.
type ProductTypeDetail struct {
	ProductType
	Products []Product `json:"products"`
}

// ProductSummary is a product without its variants and add-ons, used when a
// product is nested under one of its children.
type ProductSummary struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   *string      `json:"description"`
	Images        []string     `json:"images"`
	ProductTypeID string       `json:"productTypeId"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	ProductType   *ProductType `json:"productType,omitempty"`
}

type Product struct {
	ProductSummary
	Variants []Variant `json:"variants"`
	AddOns   []AddOn   `json:"addOns"`
}

type Variant struct {
	ID        string          `json:"id"`
	Size      *string         `json:"size"`
	Color     *string         `json:"color"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	SKU       string          `json:"sku"`
	ProductID string          `json:"productId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Product   *ProductSummary `json:"product,omitempty"`
}

type AddOn struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ProductID   string          `json:"productId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Product     *ProductSummary `json:"product,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
