// Package trcache is the translation cache: an append-only map from a
// (text, source, destination) triple to the translated text, backed by a
// KV store. There is no eviction and no TTL.
package trcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clir/internal/db"
)

// store is the consumer interface for the translation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Cache wraps a KV store with composite-key translation lookups.
// Lookup and Store never fail the caller: storage errors are logged and
// treated as misses.
type Cache struct {
	store      store
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a translation cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithKeyPrefix namespaces stored keys (used by shared backends like Redis).
// The file backend keeps keys bare so the cache file stays a plain
// "<text>_<src>_<dest>" to translation map.
func (c *Cache) WithKeyPrefix(prefix string) *Cache {
	c.keyPrefix = prefix
	return c
}

// Key builds the composite cache key for a translation triple.
func Key(text, src, dest string) string {
	return fmt.Sprintf("%s_%s_%s", text, src, dest)
}

// Lookup returns the cached translation for the triple, if present.
func (c *Cache) Lookup(ctx context.Context, text, src, dest string) (string, bool) {
	key := c.keyPrefix + Key(text, src, dest)

	val, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read translation cache", zap.Error(err))
		}
		c.incCache("miss")
		return "", false
	}

	c.incCache("hit")
	return val, true
}

// Store saves a translation for the triple. Best-effort.
func (c *Cache) Store(ctx context.Context, text, src, dest, translation string) {
	key := c.keyPrefix + Key(text, src, dest)
	if err := c.store.Set(ctx, key, translation); err != nil {
		c.logger.Warn("Failed to write translation cache", zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
