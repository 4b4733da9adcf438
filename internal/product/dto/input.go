package dto

type CreateProductInput struct {
	Name          string
	Description   *string
	Images        []string
	ProductTypeID string
}

// UpdateProductInput applies only the non-nil fields.
type UpdateProductInput struct {
	ID            string
	Name          *string
	Description   *string
	Images        []string
	ProductTypeID *string
}

// ProductFilters narrows a product listing. TypeName matches the product
// type name case-insensitively.
type ProductFilters struct {
	TypeName      string `json:"typeName,omitempty"`
	ProductTypeID string `json:"productTypeId,omitempty"`
	Query         string `json:"query,omitempty"`
}
