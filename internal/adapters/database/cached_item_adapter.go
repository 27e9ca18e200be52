package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/providers"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	itemByIDTTL       = 300
	itemSearchTTL     = 120
	itemSearchPrefix  = "items:search:"
	itemByIDKeyFormat = "item:%d"
)

// CachedItemAdapter wraps an ItemRepository with read-through caching.
// Writes invalidate the item's entry and all cached search results.
type CachedItemAdapter struct {
	adapter repositories.ItemRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedItemAdapter creates a new cached item adapter; metrics may be nil
func NewCachedItemAdapter(adapter repositories.ItemRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.ItemRepository {
	return &CachedItemAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

func itemCacheKey(id int64) string {
	return fmt.Sprintf(itemByIDKeyFormat, id)
}

func itemSearchCacheKey(text string) string {
	return itemSearchPrefix + text
}

// Create delegates to the base adapter and invalidates search results
func (a *CachedItemAdapter) Create(ctx context.Context, item *entities.Item) error {
	if err := a.adapter.Create(ctx, item); err != nil {
		return err
	}
	a.invalidateSearches(ctx)
	return nil
}

// GetByID retrieves an item by id with caching
func (a *CachedItemAdapter) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	cacheKey := itemCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var item entities.Item
		if err := json.Unmarshal(cached, &item); err == nil {
			a.recordHit(ctx, cacheKey)
			return &item, nil
		}
		log.Warn().Int64("item_id", id).Msg("failed to unmarshal cached item")
	}
	a.recordMiss(ctx, cacheKey)

	item, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(item); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, itemByIDTTL); err != nil {
			log.Warn().Err(err).Int64("item_id", id).Msg("failed to cache item")
		}
	}

	return item, nil
}

// Update delegates to the base adapter and invalidates the item's entries
func (a *CachedItemAdapter) Update(ctx context.Context, item *entities.Item) error {
	if err := a.adapter.Update(ctx, item); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, itemCacheKey(item.ID)); err != nil {
		log.Warn().Err(err).Int64("item_id", item.ID).Msg("failed to invalidate cached item")
	}
	a.invalidateSearches(ctx)

	return nil
}

// ListByOwner delegates to the base adapter; owner listings are not cached
// because they embed per-viewer booking data downstream
func (a *CachedItemAdapter) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Item, error) {
	return a.adapter.ListByOwner(ctx, ownerID)
}

// Search retrieves matching items with caching keyed by the search text
func (a *CachedItemAdapter) Search(ctx context.Context, text string) ([]*entities.Item, error) {
	cacheKey := itemSearchCacheKey(text)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var items []*entities.Item
		if err := json.Unmarshal(cached, &items); err == nil {
			a.recordHit(ctx, cacheKey)
			return items, nil
		}
		log.Warn().Str("text", text).Msg("failed to unmarshal cached search result")
	}
	a.recordMiss(ctx, cacheKey)

	items, err := a.adapter.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, itemSearchTTL); err != nil {
			log.Warn().Err(err).Str("text", text).Msg("failed to cache search result")
		}
	}

	return items, nil
}

// ListByRequest delegates to the base adapter
func (a *CachedItemAdapter) ListByRequest(ctx context.Context, requestID int64) ([]*entities.Item, error) {
	return a.adapter.ListByRequest(ctx, requestID)
}

func (a *CachedItemAdapter) recordHit(ctx context.Context, key string) {
	if a.metrics != nil {
		observability.RecordCacheHit(ctx, a.metrics, key)
	}
}

func (a *CachedItemAdapter) recordMiss(ctx context.Context, key string) {
	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, key)
	}
}

func (a *CachedItemAdapter) invalidateSearches(ctx context.Context) {
	if err := a.cache.DeleteByPrefix(ctx, itemSearchPrefix); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached search results")
	}
}
