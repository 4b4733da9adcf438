package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	productdto "github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	msgNameRequired  = "Name is required"
	msgNotFound      = "Product type not found"
	msgDuplicateName = "Product type with this name already exists"
	msgHasProducts   = "Cannot delete product type with existing products"
)

type productTypeUseCase struct {
	repo      producttype.Repository
	products  product.Repository
	publisher events.Publisher
	lists     product.CacheInvalidator
	index     product.SearchIndex
	logger    logger.ZapLogger
}

// NewProductTypeUseCase wires the product type usecase. index may be nil when
// search runs against the database.
func NewProductTypeUseCase(
	repo producttype.Repository,
	products product.Repository,
	publisher events.Publisher,
	lists product.CacheInvalidator,
	index product.SearchIndex,
	log logger.ZapLogger,
) producttype.UseCase {
	return &productTypeUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		lists:     lists,
		index:     index,
		logger:    log,
	}
}

func (uc *productTypeUseCase) CreateProductType(ctx context.Context, input *dto.CreateProductTypeInput) (*model.ProductType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation(msgNameRequired)
	}

	pt := &model.ProductType{
		BaseModel:   model.NewBaseModel(),
		Name:        name,
		Description: input.Description,
	}
	if err := uc.repo.Create(ctx, pt); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.KindConflict, msgDuplicateName, err)
		}
		return nil, err
	}

	uc.changed(ctx, events.ProductTypeCreated, pt)
	return pt, nil
}

// GetProductType loads a product type together with its products, newest
// first, each carrying price-sorted variants and add-ons.
func (uc *productTypeUseCase) GetProductType(ctx context.Context, id string) (*model.ProductType, error) {
	pt, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := uc.products.FindAll(ctx, &productdto.ProductFilters{ProductTypeID: pt.ID})
	if err != nil {
		return nil, err
	}
	pt.Products = products
	return pt, nil
}

func (uc *productTypeUseCase) ListProductTypes(ctx context.Context) ([]model.ProductType, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *productTypeUseCase) UpdateProductType(ctx context.Context, input *dto.UpdateProductTypeInput) (*model.ProductType, error) {
	pt, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	renamed := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation(msgNameRequired)
		}
		renamed = name != pt.Name
		pt.Name = name
	}
	if input.Description != nil {
		pt.Description = input.Description
	}
	pt.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, pt); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.KindConflict, msgDuplicateName, err)
		}
		return nil, err
	}

	uc.changed(ctx, events.ProductTypeUpdated, pt)
	if renamed {
		uc.reindexProducts(ctx, pt)
	}
	return pt, nil
}

// reindexProducts refreshes the search documents of every product of pt,
// which carry the type name.
func (uc *productTypeUseCase) reindexProducts(ctx context.Context, pt *model.ProductType) {
	if uc.index == nil {
		return
	}
	products, err := uc.products.FindAll(ctx, &productdto.ProductFilters{ProductTypeID: pt.ID})
	if err != nil {
		uc.logger.Error("failed to load products for reindex", zap.String("product_type_id", pt.ID), zap.Error(err))
		return
	}
	for i := range products {
		if err := uc.index.IndexProduct(ctx, &products[i]); err != nil {
			uc.logger.Error("failed to reindex product", zap.String("id", products[i].ID), zap.Error(err))
		}
	}
}

// DeleteProductType refuses to remove a type that still owns products.
func (uc *productTypeUseCase) DeleteProductType(ctx context.Context, id string) error {
	pt, err := uc.find(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, pt.ID); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return apperror.Wrap(apperror.KindConflict, msgHasProducts, err)
		}
		return err
	}

	uc.changed(ctx, events.ProductTypeDeleted, pt)
	return nil
}

func (uc *productTypeUseCase) find(ctx context.Context, id string) (*model.ProductType, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound(msgNotFound)
	}
	pt, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, apperror.NotFound(msgNotFound)
	}
	return pt, nil
}

// changed runs the post-write side effects. Product listings embed the type,
// so they are invalidated on every type change.
func (uc *productTypeUseCase) changed(ctx context.Context, eventType string, pt *model.ProductType) {
	uc.lists.Invalidate(ctx)
	uc.publisher.Publish(ctx, eventType, pt.ID, pt)
	uc.logger.Debug("product type changed", zap.String("event_type", eventType), zap.String("id", pt.ID))
}
