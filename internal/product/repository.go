package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

// Repository loads products with their product type, variants and add-ons
// attached. FindByID returns (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

// SearchIndex is a full-text index over product names and descriptions.
type SearchIndex interface {
	IndexProduct(ctx context.Context, p *model.Product) error
	RemoveProduct(ctx context.Context, id string) error
	SearchProductIDs(ctx context.Context, query string, limit int) ([]string, error)
}
