package product

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listKeyPrefix = "catalog:products:"
	// generationKey sits outside listKeyPrefix so invalidation keeps it.
	generationKey = "catalog:products-generation"
)

// CacheInvalidator drops every cached product listing. Any catalog write can
// change what a listing embeds, so all writers call it.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// ListCache caches product listings keyed by their filters. Cache failures
// are logged and treated as misses.
//
// Keys carry a generation that every Invalidate replaces. A listing read from
// the database before a write but stored after that write's Invalidate lands
// under the old generation and is never served.
type ListCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewListCache(c cache.Cache, ttl time.Duration, log logger.ZapLogger) *ListCache {
	return &ListCache{cache: c, ttl: ttl, logger: log}
}

// Get returns the cached listing for filters. On a miss, key is where the
// listing loaded by the caller should be stored with Set. An empty key means
// the listing must not be cached.
func (l *ListCache) Get(ctx context.Context, filters *dto.ProductFilters) (products []model.Product, key string, ok bool) {
	gen, err := l.generation(ctx)
	if err != nil {
		l.logger.Warn("product list cache generation read failed", zap.Error(err))
		return nil, "", false
	}
	key, err = listKey(gen, filters)
	if err != nil {
		return nil, "", false
	}

	data, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Warn("product list cache read failed", zap.String("key", key), zap.Error(err))
		return nil, "", false
	}
	if !ok {
		return nil, key, false
	}

	if err := json.Unmarshal(data, &products); err != nil {
		l.logger.Warn("product list cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, key, false
	}
	return products, key, true
}

func (l *ListCache) Set(ctx context.Context, key string, products []model.Product) {
	if key == "" {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
		l.logger.Warn("product list cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (l *ListCache) Invalidate(ctx context.Context) {
	if err := l.cache.Set(ctx, generationKey, []byte(uuid.NewString()), 0); err != nil {
		l.logger.Warn("product list cache generation bump failed", zap.Error(err))
	}
	if err := l.cache.DeletePattern(ctx, listKeyPrefix+"*"); err != nil {
		l.logger.Warn("product list cache invalidation failed", zap.Error(err))
	}
}

func (l *ListCache) generation(ctx context.Context) (string, error) {
	data, ok, err := l.cache.Get(ctx, generationKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "0", nil
	}
	return string(data), nil
}

func listKey(gen string, filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%slist:%s:%x", listKeyPrefix, gen, md5.Sum(data)), nil
}
