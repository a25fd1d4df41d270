package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/internal/models"
)

const catalogCacheKey = "catalog:courses"

// CatalogCache caches the unfiltered course catalog in redis. Lookups are
// best effort: any cache failure falls through to the database.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache constructs the cache wrapper.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached catalog and whether the lookup hit.
func (c *CatalogCache) Get(ctx context.Context) ([]models.Course, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var courses []models.Course
	if err := json.Unmarshal(payload, &courses); err != nil {
		c.logger.Warn("catalog cache decode failed", zap.Error(err))
		return nil, false
	}
	return courses, true
}

// Set stores the catalog snapshot.
func (c *CatalogCache) Set(ctx context.Context, courses []models.Course) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(courses)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, catalogCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached snapshot after catalog mutations.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		c.logger.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
