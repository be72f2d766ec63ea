package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmoralesv/ecommerce-microservices/services/product-service/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix = "product:detail:"
	defaultCacheTTL    = 5 * time.Minute
)

// CacheManager handles Redis caching for product reads. All operations
// are best-effort: a cache failure never fails the request.
type CacheManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheManager creates a CacheManager with the default TTL.
func NewCacheManager(rdb *redis.Client, logger *zap.Logger) *CacheManager {
	return &CacheManager{redis: rdb, ttl: defaultCacheTTL, logger: logger}
}

// GetProduct retrieves a cached product, reporting whether it was found.
func (cm *CacheManager) GetProduct(ctx context.Context, productID uint) (*models.Product, bool) {
	cached, err := cm.redis.Get(ctx, cacheKey(productID)).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProduct caches a product asynchronously.
func (cm *CacheManager) SetProduct(product *models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		b, err := json.Marshal(product)
		if err != nil {
			cm.logger.Warn("Failed to marshal product for cache", zap.Error(err), zap.Uint("product_id", product.ID))
			return
		}
		if err := cm.redis.Set(bgCtx, cacheKey(product.ID), b, cm.ttl).Err(); err != nil {
			cm.logger.Warn("Failed to cache product", zap.Error(err), zap.Uint("product_id", product.ID))
		}
	}()
}

// InvalidateProduct drops the cache entry for a product after a write.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, productID uint) {
	if err := cm.redis.Del(ctx, cacheKey(productID)).Err(); err != nil {
		cm.logger.Warn("Failed to invalidate product cache", zap.Error(err), zap.Uint("product_id", productID))
	}
}

func cacheKey(productID uint) string {
	return fmt.Sprintf("%s%d", productCachePrefix, productID)
}
