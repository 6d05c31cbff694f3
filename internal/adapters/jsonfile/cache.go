package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"cattree/internal/domain"
)

// DefaultCacheSize is the number of inventories kept by NewCache
const DefaultCacheSize = 8

type cacheKey struct {
	path  string
	mtime time.Time
	size  int64
}

// Cache keeps recently loaded inventories. An entry is reused only while the
// file's modification time and size are unchanged, so a rewritten artifact is
// always reloaded.
type Cache struct {
	entries *lru.Cache[cacheKey, *domain.Inventory]
}

// NewCache creates a cache holding up to size inventories
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, *domain.Inventory](size)
	if err != nil {
		return nil, fmt.Errorf("create inventory cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Load returns the inventory at path, reading it only when needed.
// Callers must treat the returned inventory as read-only.
func (c *Cache) Load(ctx context.Context, path string) (*domain.Inventory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	key := cacheKey{path: abs, mtime: info.ModTime(), size: info.Size()}
	if inv, ok := c.entries.Get(key); ok {
		return inv, nil
	}

	inv, err := NewStore(abs).Read(ctx)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, inv)
	return inv, nil
}

// Len returns the number of cached inventories
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Reader returns an InventoryReader bound to path that reads through the cache
func (c *Cache) Reader(path string) *CachedReader {
	return &CachedReader{cache: c, path: path}
}

// CachedReader implements ports.InventoryReader over a Cache
type CachedReader struct {
	cache *Cache
	path  string
}

func (r *CachedReader) Read(ctx context.Context) (*domain.Inventory, error) {
	return r.cache.Load(ctx, r.path)
}
