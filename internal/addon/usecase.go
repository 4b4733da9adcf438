package addon

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/addon/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateAddOn(ctx context.Context, input *dto.CreateAddOnInput) (*model.AddOn, error)
	GetAddOn(ctx context.Context, id string) (*model.AddOn, error)
	ListAddOnsByProduct(ctx context.Context, productID string) ([]model.AddOn, error)
	UpdateAddOn(ctx context.Context, input *dto.UpdateAddOnInput) (*model.AddOn, error)
	DeleteAddOn(ctx context.Context, id string) error
}
