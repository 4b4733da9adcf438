package producttype

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository returns (nil, nil) from FindByID when no row matches.
type Repository interface {
	Create(ctx context.Context, pt *model.ProductType) error
	FindByID(ctx context.Context, id string) (*model.ProductType, error)
	FindAll(ctx context.Context) ([]model.ProductType, error)
	Update(ctx context.Context, pt *model.ProductType) error
	Delete(ctx context.Context, id string) error
}
