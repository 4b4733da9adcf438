package variant

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository returns (nil, nil) from FindByID when no row matches.
type Repository interface {
	Create(ctx context.Context, v *model.Variant) error
	FindByID(ctx context.Context, id string) (*model.Variant, error)
	FindByProductID(ctx context.Context, productID string) ([]model.Variant, error)
	Update(ctx context.Context, v *model.Variant) error
	Delete(ctx context.Context, id string) error
}
