package database

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/config"
)

// CachedStore decorates a RangeStore with a short-TTL read cache keyed by
// sheet label. Any write to a sheet deletes that sheet's cache entry, so
// the staleness of a read is bounded by the TTL.
type CachedStore struct {
	store   RangeStore
	cache   *gocache.Cache
	enabled bool
	log     zerolog.Logger
}

// NewCachedStore wraps store with the configured cache. When the cache is
// disabled every read goes straight through.
func NewCachedStore(store RangeStore, cfg *config.CacheConfig, log zerolog.Logger) *CachedStore {
	return &CachedStore{
		store:   store,
		cache:   gocache.New(cfg.TTL, 2*cfg.TTL),
		enabled: cfg.Enabled,
		log:     log.With().Str("component", "cache").Logger(),
	}
}

// Connect delegates to the underlying store
func (c *CachedStore) Connect(ctx context.Context) error {
	return c.store.Connect(ctx)
}

// GetRange returns the cached rows for the sheet when present, otherwise
// fetches and caches them.
func (c *CachedStore) GetRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	label := SheetLabel(rangeSpec)

	if c.enabled {
		if cached, found := c.cache.Get(label); found {
			c.log.Debug().Str("sheet", label).Msg("Cache hit")
			return cached.([][]string), nil
		}
	}

	rows, err := c.store.GetRange(ctx, rangeSpec)
	if err != nil {
		return nil, err
	}

	if c.enabled {
		c.cache.Set(label, rows, gocache.DefaultExpiration)
		c.log.Debug().Str("sheet", label).Int("rows", len(rows)).Msg("Cache filled")
	}

	return rows, nil
}

// SetRange invalidates the sheet's cache entry and delegates. The entry is
// deleted unconditionally, even when the write covers only part of the
// cached range.
func (c *CachedStore) SetRange(ctx context.Context, rangeSpec string, values [][]string) error {
	c.invalidate(rangeSpec)
	return c.store.SetRange(ctx, rangeSpec, values)
}

// AppendRange invalidates the sheet's cache entry and delegates
func (c *CachedStore) AppendRange(ctx context.Context, rangeSpec string, values [][]string) error {
	c.invalidate(rangeSpec)
	return c.store.AppendRange(ctx, rangeSpec, values)
}

func (c *CachedStore) invalidate(rangeSpec string) {
	label := SheetLabel(rangeSpec)
	c.cache.Delete(label)
	c.log.Debug().Str("sheet", label).Msg("Cache invalidated")
}
