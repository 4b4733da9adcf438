package dto

type CreateProductTypeInput struct {
	Name        string
	Description *string
}

// UpdateProductTypeInput applies only the non-nil fields.
type UpdateProductTypeInput struct {
	ID          string
	Name        *string
	Description *string
}
