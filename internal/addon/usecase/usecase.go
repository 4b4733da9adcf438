package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/addon"
	"github.com/fekuna/omnipos-catalog-service/internal/addon/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	msgRequired        = "Name, price, and productId are required"
	msgInvalidProduct  = "Invalid product ID"
	msgFoodOnly        = "Add-ons can only be created for food items"
	msgNotFound        = "Add-on not found"
	msgProductNotFound = "Product not found"
	msgNegativePrice   = "Price must be a non-negative number"
	msgPriceTooLarge   = "Price must be less than 100000000"
	msgEmptyName       = "Name must not be empty"
)

type addOnUseCase struct {
	repo      addon.Repository
	products  product.Repository
	lists     product.CacheInvalidator
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewAddOnUseCase(
	repo addon.Repository,
	products product.Repository,
	lists product.CacheInvalidator,
	publisher events.Publisher,
	log logger.ZapLogger,
) addon.UseCase {
	return &addOnUseCase{
		repo:      repo,
		products:  products,
		lists:     lists,
		publisher: publisher,
		logger:    log,
	}
}

// CreateAddOn only accepts products whose type is food. The rule is checked
// here only; re-typing a product later leaves its add-ons in place.
func (uc *addOnUseCase) CreateAddOn(ctx context.Context, input *dto.CreateAddOnInput) (*model.AddOn, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil || input.ProductID == "" {
		return nil, apperror.Validation(msgRequired)
	}
	if input.Price.IsNegative() {
		return nil, apperror.Validation(msgNegativePrice)
	}
	if !model.PriceFits(*input.Price) {
		return nil, apperror.Validation(msgPriceTooLarge)
	}

	p, err := uc.product(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.Validation(msgInvalidProduct)
	}
	if !p.IsFood() {
		return nil, apperror.Validation(msgFoodOnly)
	}

	a := &model.AddOn{
		BaseModel:   model.NewBaseModel(),
		Name:        name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		ProductID:   p.ID,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return nil, apperror.Wrap(apperror.KindValidation, msgInvalidProduct, err)
		}
		return nil, err
	}

	a.Product = p.Summary()
	uc.changed(ctx, events.AddOnCreated, a)
	return a, nil
}

func (uc *addOnUseCase) GetAddOn(ctx context.Context, id string) (*model.AddOn, error) {
	a, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachProduct(ctx, []*model.AddOn{a}, a.ProductID); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAddOnsByProduct fails for an unknown product and returns nothing for
// products that are not food.
func (uc *addOnUseCase) ListAddOnsByProduct(ctx context.Context, productID string) ([]model.AddOn, error) {
	p, err := uc.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(msgProductNotFound)
	}
	if !p.IsFood() {
		return []model.AddOn{}, nil
	}

	addOns, err := uc.repo.FindByProductID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	summary := p.Summary()
	for i := range addOns {
		addOns[i].Product = summary
	}
	return addOns, nil
}

func (uc *addOnUseCase) UpdateAddOn(ctx context.Context, input *dto.UpdateAddOnInput) (*model.AddOn, error) {
	a, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation(msgEmptyName)
		}
		a.Name = name
	}
	if input.Description != nil {
		a.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.Validation(msgNegativePrice)
		}
		if !model.PriceFits(*input.Price) {
			return nil, apperror.Validation(msgPriceTooLarge)
		}
		a.Price = input.Price.Round(2)
	}
	a.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := uc.attachProduct(ctx, []*model.AddOn{a}, a.ProductID); err != nil {
		return nil, err
	}

	uc.changed(ctx, events.AddOnUpdated, a)
	return a, nil
}

func (uc *addOnUseCase) DeleteAddOn(ctx context.Context, id string) error {
	a, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.ID); err != nil {
		return err
	}

	uc.changed(ctx, events.AddOnDeleted, a)
	return nil
}

func (uc *addOnUseCase) find(ctx context.Context, id string) (*model.AddOn, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound(msgNotFound)
	}
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NotFound(msgNotFound)
	}
	return a, nil
}

// product loads a product, returning (nil, nil) for unknown or malformed ids.
func (uc *addOnUseCase) product(ctx context.Context, id string) (*model.Product, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	return uc.products.FindByID(ctx, id)
}

func (uc *addOnUseCase) attachProduct(ctx context.Context, addOns []*model.AddOn, productID string) error {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	summary := p.Summary()
	for _, a := range addOns {
		a.Product = summary
	}
	return nil
}

func (uc *addOnUseCase) changed(ctx context.Context, eventType string, a *model.AddOn) {
	uc.lists.Invalidate(ctx)
	uc.publisher.Publish(ctx, eventType, a.ID, a)
	uc.logger.Debug("add-on changed", zap.String("event_type", eventType), zap.String("id", a.ID), zap.String("product_id", a.ProductID))
}
