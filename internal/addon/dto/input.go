package dto

import "github.com/shopspring/decimal"

type CreateAddOnInput struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
	ProductID   string
}

// UpdateAddOnInput applies only the non-nil fields.
type UpdateAddOnInput struct {
	ID          string
	Name        *string
	Description *string
	Price       *decimal.Decimal
}
