package records

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores decoded bags by content key. Cached bags are shared and must
// be treated as read-only.
type Cache interface {
	Get(ctx context.Context, key string) (*FileBag, bool)
	Add(ctx context.Context, key string, bag *FileBag)
}

// MemoryCache is an in-process LRU of decoded bags.
type MemoryCache struct {
	lru *lru.Cache[string, *FileBag]
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	c, err := lru.New[string, *FileBag](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*FileBag, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Add(_ context.Context, key string, bag *FileBag) {
	c.lru.Add(key, bag)
}

func (c *MemoryCache) Len() int { return c.lru.Len() }

// Tiered consults caches in order and back-fills the faster tiers on a hit
// further down.
type Tiered []Cache

func (t Tiered) Get(ctx context.Context, key string) (*FileBag, bool) {
	for i, c := range t {
		if bag, ok := c.Get(ctx, key); ok {
			for _, faster := range t[:i] {
				faster.Add(ctx, key, bag)
			}
			return bag, true
		}
	}
	return nil, false
}

func (t Tiered) Add(ctx context.Context, key string, bag *FileBag) {
	for _, c := range t {
		c.Add(ctx, key, bag)
	}
}
