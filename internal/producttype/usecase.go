package producttype

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype/dto"
)

type UseCase interface {
	CreateProductType(ctx context.Context, input *dto.CreateProductTypeInput) (*model.ProductType, error)
	GetProductType(ctx context.Context, id string) (*model.ProductType, error)
	ListProductTypes(ctx context.Context) ([]model.ProductType, error)
	UpdateProductType(ctx context.Context, input *dto.UpdateProductTypeInput) (*model.ProductType, error)
	DeleteProductType(ctx context.Context, id string) error
}
