package dto

import "github.com/shopspring/decimal"

type CreateVariantInput struct {
	Size      *string
	Color     *string
	Price     *decimal.Decimal
	Stock     *int
	SKU       string
	ProductID string
}

// UpdateVariantInput applies only the non-nil fields.
type UpdateVariantInput struct {
	ID    string
	Size  *string
	Color *string
	Price *decimal.Decimal
	Stock *int
	SKU   *string
}
