package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"furniture-service/models"
	awspkg "furniture-service/pkg/aws"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "furniture:products:v:"
	CacheVersionKey        = "furniture:catalog:version"
)

// CacheManager caches resolved product lists under a version number. Any
// catalog write bumps the version, orphaning every older entry. Redis errors
// only ever cause a miss.
type CacheManager struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics awspkg.MetricsRecorder
}

func NewCacheManager(client *redis.Client, ttl time.Duration, metrics awspkg.MetricsRecorder) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheManager{redis: client, ttl: ttl, metrics: metrics}
}

// GetProductList returns the cached list stored under key, if any, and the
// cache version it looked under. A list loaded after a miss must be stored
// with that version, so a write landing in between orphans it. A zero
// version means the version could not be read and nothing should be stored.
func (cm *CacheManager) GetProductList(ctx context.Context, key string) ([]models.ProductView, int64, bool) {
	if cm == nil || cm.redis == nil {
		return nil, 0, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.record(awspkg.MetricCacheMisses)
		return nil, 0, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version, key)).Bytes()
	if err != nil {
		cm.record(awspkg.MetricCacheMisses)
		return nil, version, false
	}

	var products []models.ProductView
	if err := json.Unmarshal(cached, &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err), zap.String("key", key))
		return nil, version, false
	}
	cm.record(awspkg.MetricCacheHits)
	return products, version, true
}

// SetProductListAsync stores a list under the version it was read at, in
// the background.
func (cm *CacheManager) SetProductListAsync(version int64, key string, products []models.ProductView) {
	if cm == nil || cm.redis == nil || version <= 0 {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.listKey(version, key), payload, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err), zap.String("key", key))
		}
	}()
}

// Invalidate bumps the cache version. A failure is logged; stale entries
// then live until their TTL.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if cm == nil || cm.redis == nil {
		return
	}
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.Error(err))
		return
	}
	zap.L().Debug("Product cache invalidated", zap.Int64("new_version", newVersion))
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if err == redis.Nil {
		// SetNX so a concurrent Incr is never overwritten
		if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CacheVersionKey).Int64()
	}
	return 0, fmt.Errorf("get cache version: %w", err)
}

func (cm *CacheManager) listKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, key)
}

func (cm *CacheManager) record(metric string) {
	if cm.metrics == nil || !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.Record(ctx, awspkg.Count(metric, map[string]string{"Cache": "product_list"}))
	}()
}
