package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/variant"
	"github.com/fekuna/omnipos-catalog-service/internal/variant/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	msgRequired       = "Price, SKU, and productId are required"
	msgInvalidProduct = "Invalid product ID"
	msgDuplicateSKU   = "SKU must be unique"
	msgNotFound       = "Variant not found"
	msgNegativePrice  = "Price must be a non-negative number"
	msgPriceTooLarge  = "Price must be less than 100000000"
	msgNegativeStock  = "Stock must be a non-negative integer"
	msgEmptySKU       = "SKU must not be empty"
)

type variantUseCase struct {
	repo      variant.Repository
	products  product.Repository
	lists     product.CacheInvalidator
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewVariantUseCase(
	repo variant.Repository,
	products product.Repository,
	lists product.CacheInvalidator,
	publisher events.Publisher,
	log logger.ZapLogger,
) variant.UseCase {
	return &variantUseCase{
		repo:      repo,
		products:  products,
		lists:     lists,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *variantUseCase) CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error) {
	sku := strings.TrimSpace(input.SKU)
	if input.Price == nil || sku == "" || input.ProductID == "" {
		return nil, apperror.Validation(msgRequired)
	}
	if input.Price.IsNegative() {
		return nil, apperror.Validation(msgNegativePrice)
	}
	if !model.PriceFits(*input.Price) {
		return nil, apperror.Validation(msgPriceTooLarge)
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, apperror.Validation(msgNegativeStock)
	}

	p, err := uc.product(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	v := &model.Variant{
		BaseModel: model.NewBaseModel(),
		Size:      input.Size,
		Color:     input.Color,
		Price:     input.Price.Round(2),
		Stock:     stock,
		SKU:       sku,
		ProductID: p.ID,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, uc.classify(err)
	}

	v.Product = p.Summary()
	uc.changed(ctx, events.VariantCreated, v)
	return v, nil
}

func (uc *variantUseCase) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachProduct(ctx, []*model.Variant{v}, v.ProductID); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVariantsByProduct does not check that the product exists; an unknown
// product simply has no variants.
func (uc *variantUseCase) ListVariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error) {
	if !model.ValidID(productID) {
		return []model.Variant{}, nil
	}
	variants, err := uc.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return variants, nil
	}

	refs := make([]*model.Variant, len(variants))
	for i := range variants {
		refs[i] = &variants[i]
	}
	if err := uc.attachProduct(ctx, refs, productID); err != nil {
		return nil, err
	}
	return variants, nil
}

func (uc *variantUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error) {
	v, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Size != nil {
		v.Size = input.Size
	}
	if input.Color != nil {
		v.Color = input.Color
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.Validation(msgNegativePrice)
		}
		if !model.PriceFits(*input.Price) {
			return nil, apperror.Validation(msgPriceTooLarge)
		}
		v.Price = input.Price.Round(2)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.Validation(msgNegativeStock)
		}
		v.Stock = *input.Stock
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, apperror.Validation(msgEmptySKU)
		}
		v.SKU = sku
	}
	v.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, uc.classify(err)
	}
	if err := uc.attachProduct(ctx, []*model.Variant{v}, v.ProductID); err != nil {
		return nil, err
	}

	uc.changed(ctx, events.VariantUpdated, v)
	return v, nil
}

func (uc *variantUseCase) DeleteVariant(ctx context.Context, id string) error {
	v, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, v.ID); err != nil {
		return err
	}

	uc.changed(ctx, events.VariantDeleted, v)
	return nil
}

func (uc *variantUseCase) find(ctx context.Context, id string) (*model.Variant, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound(msgNotFound)
	}
	v, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFound(msgNotFound)
	}
	return v, nil
}

func (uc *variantUseCase) product(ctx context.Context, id string) (*model.Product, error) {
	if !model.ValidID(id) {
		return nil, apperror.Validation(msgInvalidProduct)
	}
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.Validation(msgInvalidProduct)
	}
	return p, nil
}

// attachProduct nests the owning product, with its type, under each variant.
func (uc *variantUseCase) attachProduct(ctx context.Context, variants []*model.Variant, productID string) error {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	summary := p.Summary()
	for _, v := range variants {
		v.Product = summary
	}
	return nil
}

func (uc *variantUseCase) classify(err error) error {
	switch {
	case apperror.IsUniqueViolation(err):
		return apperror.Wrap(apperror.KindConflict, msgDuplicateSKU, err)
	case apperror.IsForeignKeyViolation(err):
		return apperror.Wrap(apperror.KindValidation, msgInvalidProduct, err)
	}
	return err
}

func (uc *variantUseCase) changed(ctx context.Context, eventType string, v *model.Variant) {
	uc.lists.Invalidate(ctx)
	uc.publisher.Publish(ctx, eventType, v.ID, v)
	uc.logger.Debug("variant changed", zap.String("event_type", eventType), zap.String("id", v.ID), zap.String("product_id", v.ProductID))
}
