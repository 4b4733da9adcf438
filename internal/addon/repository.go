package addon

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository returns (nil, nil) from FindByID when no row matches.
type Repository interface {
	Create(ctx context.Context, a *model.AddOn) error
	FindByID(ctx context.Context, id string) (*model.AddOn, error)
	FindByProductID(ctx context.Context, productID string) ([]model.AddOn, error)
	Update(ctx context.Context, a *model.AddOn) error
	Delete(ctx context.Context, id string) error
}
