package model

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductType struct {
	BaseModel
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	ProductCount int       `db:"product_count" json:"-"` // only filled by list queries
	Products     []Product `db:"-" json:"products,omitempty"`
}

type Product struct {
	BaseModel
	Name          string         `db:"name" json:"name"`
	Description   *string        `db:"description" json:"description"`
	Images        pq.StringArray `db:"images" json:"images"`
	ProductTypeID string         `db:"product_type_id" json:"productTypeId"`
	ProductType   *ProductType   `db:"-" json:"productType,omitempty"`
	Variants      []Variant      `db:"-" json:"variants,omitempty"`
	AddOns        []AddOn        `db:"-" json:"addOns,omitempty"`
}

// IsFood reports whether the product belongs to the food type. The product
// type must be loaded.
func (p *Product) IsFood() bool {
	return p.ProductType != nil && IsFoodType(p.ProductType.Name)
}

// Summary returns a copy of p without its variants and add-ons, for nesting
// under a child entity.
func (p *Product) Summary() *Product {
	s := *p
	s.Variants = nil
	s.AddOns = nil
	return &s
}

type Variant struct {
	BaseModel
	Size      *string         `db:"size" json:"size"`
	Color     *string         `db:"color" json:"color"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int             `db:"stock" json:"stock"`
	SKU       string          `db:"sku" json:"sku"`
	ProductID string          `db:"product_id" json:"productId"`
	Product   *Product        `db:"-" json:"product,omitempty"`
}

type AddOn struct {
	BaseModel
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ProductID   string          `db:"product_id" json:"productId"`
	Product     *Product        `db:"-" json:"product,omitempty"`
}

// MaxPrice is the smallest price that no longer fits the numeric(10,2) price
// columns.
var MaxPrice = decimal.New(1, 8)

// PriceFits reports whether p, rounded to cents, can be stored.
func PriceFits(p decimal.Decimal) bool {
	return p.Round(2).LessThan(MaxPrice)
}
