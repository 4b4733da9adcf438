package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/producttype"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	msgRequired        = "Name and productTypeId are required"
	msgInvalidType     = "Invalid product type ID"
	msgNotFound        = "Product not found"
	msgQueryRequired   = "Search query is required"
	searchResultsLimit = 50
)

type productUseCase struct {
	repo      product.Repository
	types     producttype.Repository
	lists     *product.ListCache
	index     product.SearchIndex
	publisher events.Publisher
	logger    logger.ZapLogger
}

// NewProductUseCase wires the product usecase. index may be nil, in which
// case search runs against the database.
func NewProductUseCase(
	repo product.Repository,
	types producttype.Repository,
	lists *product.ListCache,
	index product.SearchIndex,
	publisher events.Publisher,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		types:     types,
		lists:     lists,
		index:     index,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.ProductTypeID == "" {
		return nil, apperror.Validation(msgRequired)
	}

	pt, err := uc.productType(ctx, input.ProductTypeID)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		BaseModel:     model.NewBaseModel(),
		Name:          name,
		Description:   input.Description,
		Images:        images(input.Images),
		ProductTypeID: pt.ID,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return nil, apperror.Wrap(apperror.KindValidation, msgInvalidType, err)
		}
		return nil, err
	}

	p.ProductType = pt
	p.Variants = []model.Variant{}
	p.AddOns = []model.AddOn{}

	uc.changed(ctx, events.ProductCreated, p)
	uc.syncIndex(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound(msgNotFound)
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(msgNotFound)
	}
	return p, nil
}

// ListProducts serves listings from the cache when possible.
func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	products, key, ok := uc.lists.Get(ctx, filters)
	if ok {
		return products, nil
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	uc.lists.Set(ctx, key, products)
	return products, nil
}

// SearchProducts asks the search index for matching ids and loads them from
// the database. Without an index, or when the index fails, it falls back to
// a case-insensitive match on name and description.
func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation(msgQueryRequired)
	}

	if uc.index != nil {
		ids, err := uc.index.SearchProductIDs(ctx, query, searchResultsLimit)
		if err == nil {
			return uc.repo.FindByIDs(ctx, ids)
		}
		uc.logger.Error("search index query failed, falling back to database", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, &dto.ProductFilters{Query: query})
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation(msgRequired)
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Images != nil {
		p.Images = images(input.Images)
	}
	if input.ProductTypeID != nil && *input.ProductTypeID != p.ProductTypeID {
		pt, err := uc.productType(ctx, *input.ProductTypeID)
		if err != nil {
			return nil, err
		}
		p.ProductTypeID = pt.ID
		p.ProductType = pt
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return nil, apperror.Wrap(apperror.KindValidation, msgInvalidType, err)
		}
		return nil, err
	}

	uc.changed(ctx, events.ProductUpdated, p)
	uc.syncIndex(ctx, p)
	return p, nil
}

// DeleteProduct removes the product along with its variants and add-ons.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	uc.changed(ctx, events.ProductDeleted, p)
	if uc.index != nil {
		if err := uc.index.RemoveProduct(ctx, p.ID); err != nil {
			uc.logger.Error("failed to remove product from search index", zap.String("id", p.ID), zap.Error(err))
		}
	}
	return nil
}

func (uc *productUseCase) productType(ctx context.Context, id string) (*model.ProductType, error) {
	if !model.ValidID(id) {
		return nil, apperror.Validation(msgInvalidType)
	}
	pt, err := uc.types.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, apperror.Validation(msgInvalidType)
	}
	return pt, nil
}

func (uc *productUseCase) changed(ctx context.Context, eventType string, p *model.Product) {
	uc.lists.Invalidate(ctx)
	uc.publisher.Publish(ctx, eventType, p.ID, p)
}

func (uc *productUseCase) syncIndex(ctx context.Context, p *model.Product) {
	if uc.index == nil {
		return
	}
	if err := uc.index.IndexProduct(ctx, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func images(in []string) pq.StringArray {
	out := pq.StringArray{}
	for _, img := range in {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
