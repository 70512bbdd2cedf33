package dictionary

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/wordstash/api/internal/middleware"
	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

// Cleaner removes expired cache entries in bounded batches. A pass is
// size-gated: while the cache holds fewer entries than the configured
// capacity, nothing is evicted regardless of age.
type Cleaner struct {
	store    store.Store
	settings *settings.Service
}

func NewCleaner(st store.Store, cfg *settings.Service) *Cleaner {
	return &Cleaner{store: st, settings: cfg}
}

// Run executes one cleanup pass and returns the number of entries removed.
func (c *Cleaner) Run(ctx context.Context) (int, error) {
	cfg := c.settings.Get()

	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	// Reserved keys like the settings record never expire.
	cacheKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if model.KnownCacheKey(key) {
			cacheKeys = append(cacheKeys, key)
		}
	}

	if len(cacheKeys) < cfg.CacheSize {
		return 0, nil
	}

	batchSize := cfg.Cleanup.BatchSize
	if batchSize <= 0 {
		batchSize = settings.Default().Cleanup.BatchSize
	}

	now := time.Now()
	maxAge := cfg.CacheDuration.Duration()
	removed := 0

	for start := 0; start < len(cacheKeys); start += batchSize {
		end := start + batchSize
		if end > len(cacheKeys) {
			end = len(cacheKeys)
		}
		batch := cacheKeys[start:end]

		values, err := c.store.GetMany(ctx, batch)
		if err != nil {
			return removed, err
		}

		var expired []string
		for i, raw := range values {
			if raw == nil {
				continue
			}

			var entry model.CacheEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				// A record we cannot read is a record we cannot age.
				log.Printf("[Cleaner] Skipping unreadable entry %s: %v", batch[i], err)
				continue
			}

			if entry.Expired(maxAge, now) {
				expired = append(expired, batch[i])
			}
		}

		if len(expired) == 0 {
			continue
		}

		if err := c.store.Delete(ctx, expired...); err != nil {
			return removed, err
		}
		removed += len(expired)
	}

	if removed > 0 {
		middleware.RecordEvictions(removed)
		log.Printf("[Cleaner] Removed %d expired entries", removed)
	}
	return removed, nil
}
