package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/variant"
	"github.com/fekuna/omnipos-catalog-service/internal/variant/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	store     *catalogtest.Store
	publisher *catalogtest.Publisher
	uc        variant.UseCase
	product   *model.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := catalogtest.NewStore()
	pub := &catalogtest.Publisher{}
	lists := product.NewListCache(catalogtest.NewCache(), 0, logger.NewNop())

	pt := &model.ProductType{BaseModel: model.NewBaseModel(), Name: "apparel"}
	require.NoError(t, store.ProductTypes().Create(ctx, pt))
	p := &model.Product{BaseModel: model.NewBaseModel(), Name: "T-Shirt", ProductTypeID: pt.ID}
	require.NoError(t, store.Products().Create(ctx, p))

	return &fixture{
		store:     store,
		publisher: pub,
		uc:        NewVariantUseCase(store.Variants(), store.Products(), lists, pub, logger.NewNop()),
		product:   p,
	}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func intp(i int) *int { return &i }

func TestCreateVariant(t *testing.T) {
	f := newFixture(t)

	v, err := f.uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		Size:      str("M"),
		Color:     str("Red"),
		Price:     price("19.999"),
		SKU:       "TS-M-RED",
		ProductID: f.product.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "20.00", v.Price.StringFixed(2))
	assert.Equal(t, 0, v.Stock)
	require.NotNil(t, v.Product)
	assert.Equal(t, "T-Shirt", v.Product.Name)
	require.NotNil(t, v.Product.ProductType)
	assert.Equal(t, "apparel", v.Product.ProductType.Name)
	assert.Nil(t, v.Product.Variants)
	assert.Equal(t, []string{events.VariantCreated}, f.publisher.Types())
}

func TestCreateVariantValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input dto.CreateVariantInput
		kind  apperror.Kind
		msg   string
	}{
		{
			name:  "missing price",
			input: dto.CreateVariantInput{SKU: "A", ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Price, SKU, and productId are required",
		},
		{
			name:  "missing sku",
			input: dto.CreateVariantInput{Price: price("1"), ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Price, SKU, and productId are required",
		},
		{
			name:  "negative price",
			input: dto.CreateVariantInput{Price: price("-1"), SKU: "A", ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Price must be a non-negative number",
		},
		{
			name:  "price too large",
			input: dto.CreateVariantInput{Price: price("100000000"), SKU: "A", ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Price must be less than 100000000",
		},
		{
			name:  "price rounds past the limit",
			input: dto.CreateVariantInput{Price: price("99999999.995"), SKU: "A", ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Price must be less than 100000000",
		},
		{
			name:  "negative stock",
			input: dto.CreateVariantInput{Price: price("1"), Stock: intp(-2), SKU: "A", ProductID: f.product.ID},
			kind:  apperror.KindValidation,
			msg:   "Stock must be a non-negative integer",
		},
		{
			name:  "unknown product",
			input: dto.CreateVariantInput{Price: price("1"), SKU: "A", ProductID: uuid.NewString()},
			kind:  apperror.KindValidation,
			msg:   "Invalid product ID",
		},
		{
			name:  "malformed product id",
			input: dto.CreateVariantInput{Price: price("1"), SKU: "A", ProductID: "abc"},
			kind:  apperror.KindValidation,
			msg:   "Invalid product ID",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateVariant(ctx, &tc.input)
			assert.Equal(t, tc.kind, apperror.KindOf(err))
			assert.Equal(t, tc.msg, apperror.Message(err, ""))
		})
	}
}

func TestCreateVariantZeroPriceAllowed(t *testing.T) {
	f := newFixture(t)
	v, err := f.uc.CreateVariant(context.Background(), &dto.CreateVariantInput{Price: price("0"), SKU: "FREE", ProductID: f.product.ID})
	require.NoError(t, err)
	assert.True(t, v.Price.IsZero())
}

func TestSKUIsGloballyUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Price: price("10"), SKU: "DUP", ProductID: f.product.ID})
	require.NoError(t, err)

	other := &model.Product{BaseModel: model.NewBaseModel(), Name: "Hoodie", ProductTypeID: f.product.ProductTypeID}
	require.NoError(t, f.store.Products().Create(ctx, other))

	_, err = f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Price: price("12"), SKU: "DUP", ProductID: other.ID})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "SKU must be unique", apperror.Message(err, ""))
}

func TestListVariantsByProductSortsByPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, p := range []string{"7.99", "3.99", "5.99"} {
		_, err := f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Price: price(p), SKU: []string{"A", "B", "C"}[i], ProductID: f.product.ID})
		require.NoError(t, err)
	}

	variants, err := f.uc.ListVariantsByProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, "3.99", variants[0].Price.StringFixed(2))
	assert.Equal(t, "5.99", variants[1].Price.StringFixed(2))
	assert.Equal(t, "7.99", variants[2].Price.StringFixed(2))
	assert.Equal(t, "T-Shirt", variants[0].Product.Name)
}

func TestListVariantsForUnknownProductIsEmpty(t *testing.T) {
	f := newFixture(t)

	variants, err := f.uc.ListVariantsByProduct(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, variants)
	assert.NotNil(t, variants)

	variants, err = f.uc.ListVariantsByProduct(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, variants)
}

func TestUpdateVariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, err := f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Size: str("S"), Price: price("10"), Stock: intp(3), SKU: "S-1", ProductID: f.product.ID})
	require.NoError(t, err)
	_, err = f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Price: price("10"), SKU: "S-2", ProductID: f.product.ID})
	require.NoError(t, err)

	updated, err := f.uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: v.ID, Stock: intp(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, "S", *updated.Size)
	assert.Equal(t, "10.00", updated.Price.StringFixed(2))

	_, err = f.uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: v.ID, SKU: str("S-2")})
	assert.Equal(t, "SKU must be unique", apperror.Message(err, ""))

	_, err = f.uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: v.ID, Price: price("-0.01")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: v.ID, Price: price("123456789")})
	assert.Equal(t, "Price must be less than 100000000", apperror.Message(err, ""))

	_, err = f.uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: uuid.NewString(), Stock: intp(1)})
	assert.Equal(t, "Variant not found", apperror.Message(err, ""))
}

func TestDeleteVariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, err := f.uc.CreateVariant(ctx, &dto.CreateVariantInput{Price: price("1"), SKU: "X", ProductID: f.product.ID})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteVariant(ctx, v.ID))
	_, err = f.uc.GetVariant(ctx, v.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(f.uc.DeleteVariant(ctx, v.ID)))
}

func TestVariantChangesAreLogged(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zapcore.DebugLevel)
	uc := NewVariantUseCase(f.store.Variants(), f.store.Products(), product.NewListCache(catalogtest.NewCache(), 0, logger.NewNop()),
		f.publisher, logger.NewFromZap(zap.New(core)))

	v, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{Price: price("5"), SKU: "LOG-1", ProductID: f.product.ID})
	require.NoError(t, err)

	entries := logs.FilterMessage("variant changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, events.VariantCreated, fields["event_type"])
	assert.Equal(t, v.ID, fields["id"])
	assert.Equal(t, f.product.ID, fields["product_id"])
}
