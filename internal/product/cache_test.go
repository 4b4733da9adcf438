package product

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) DeletePattern(context.Context, string) error {
	return errors.New("connection refused")
}

func TestListKeyDependsOnFiltersAndGeneration(t *testing.T) {
	all, err := listKey("0", &dto.ProductFilters{})
	require.NoError(t, err)
	food, err := listKey("0", &dto.ProductFilters{TypeName: "food"})
	require.NoError(t, err)
	again, err := listKey("0", &dto.ProductFilters{TypeName: "food"})
	require.NoError(t, err)
	later, err := listKey("1", &dto.ProductFilters{TypeName: "food"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(all, "catalog:products:list:"))
	assert.NotEqual(t, all, food)
	assert.Equal(t, food, again)
	assert.NotEqual(t, food, later)
}

func TestListCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	lists := NewListCache(catalogtest.NewCache(), time.Minute, logger.NewNop())
	filters := &dto.ProductFilters{TypeName: "food"}

	_, key, ok := lists.Get(ctx, filters)
	assert.False(t, ok)
	require.NotEmpty(t, key)

	lists.Set(ctx, key, []model.Product{{BaseModel: model.BaseModel{ID: "p1"}, Name: "Burger"}})
	got, _, ok := lists.Get(ctx, filters)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Burger", got[0].Name)

	_, _, ok = lists.Get(ctx, &dto.ProductFilters{})
	assert.False(t, ok)
}

func TestListCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c := catalogtest.NewCache()
	lists := NewListCache(c, 0, logger.NewNop())
	filters := &dto.ProductFilters{}

	key, err := listKey("0", filters)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, []byte("not json"), 0))

	_, _, ok := lists.Get(ctx, filters)
	assert.False(t, ok)
}

func TestListCacheInvalidateDropsOnlyListings(t *testing.T) {
	ctx := context.Background()
	c := catalogtest.NewCache()
	lists := NewListCache(c, 0, logger.NewNop())
	require.NoError(t, c.Set(ctx, "session:abc", []byte("x"), 0))
	for _, f := range []*dto.ProductFilters{{}, {TypeName: "food"}} {
		_, key, _ := lists.Get(ctx, f)
		lists.Set(ctx, key, []model.Product{})
	}
	require.Equal(t, 2, c.CountPrefix("catalog:products:list:"))

	lists.Invalidate(ctx)

	assert.Equal(t, 0, c.CountPrefix("catalog:products:list:"))
	_, ok, _ := c.Get(ctx, "session:abc")
	assert.True(t, ok)
}

func TestListCacheDropsListingLoadedBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	lists := NewListCache(catalogtest.NewCache(), time.Minute, logger.NewNop())
	filters := &dto.ProductFilters{}

	// A reader misses and loads the old listing, then a write invalidates
	// before the reader stores it.
	_, staleKey, ok := lists.Get(ctx, filters)
	require.False(t, ok)
	lists.Invalidate(ctx)
	lists.Set(ctx, staleKey, []model.Product{{Name: "Old"}})

	_, freshKey, ok := lists.Get(ctx, filters)
	assert.False(t, ok)
	assert.NotEqual(t, staleKey, freshKey)
}

func TestListCacheToleratesBackendFailure(t *testing.T) {
	ctx := context.Background()
	lists := NewListCache(brokenCache{}, 0, logger.NewNop())

	_, key, ok := lists.Get(ctx, &dto.ProductFilters{})
	assert.False(t, ok)
	assert.Empty(t, key)
	lists.Set(ctx, key, []model.Product{})
	lists.Invalidate(ctx)
}
