package variant

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/variant/dto"
)

type UseCase interface {
	CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error)
	GetVariant(ctx context.Context, id string) (*model.Variant, error)
	ListVariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error)
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error)
	DeleteVariant(ctx context.Context, id string) error
}
