package data

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/se2de/engine/internal/core/tree"
)

// DefaultCacheSize is the number of decoded scenes kept by default.
const DefaultCacheSize = 10

// SceneCache keeps the decoded trees of the most recently used scenes.
// Both lookups and inserts refresh an entry; the least recently used entry
// is evicted once the cache holds more than its capacity.
type SceneCache struct {
	entries *lru.Cache[string, []any]
	source  Source
	log     *zap.Logger
}

// NewSceneCache creates a cache in front of src. size <= 0 selects
// DefaultCacheSize.
func NewSceneCache(src Source, size int, log *zap.Logger) (*SceneCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &SceneCache{source: src, log: log}
	entries, err := lru.NewWithEvict(size, func(name string, _ []any) {
		c.log.Debug("scene evicted from cache", zap.String("scene", name))
	})
	if err != nil {
		return nil, fmt.Errorf("create scene cache: %w", err)
	}
	c.entries = entries
	return c, nil
}

// GetOrLoad returns the raw tree of scene name, fetching and decoding it on
// a miss. The returned tree is a private copy: callers may mutate it
// without affecting the cached data.
func (c *SceneCache) GetOrLoad(ctx context.Context, name string) ([]any, error) {
	if raw, ok := c.entries.Get(name); ok {
		c.log.Debug("scene cache hit", zap.String("scene", name))
		return tree.CloneSlice(raw), nil
	}
	c.log.Debug("scene cache miss", zap.String("scene", name))

	raw, err := c.source.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch scene %s: %w", name, err)
	}
	doc, err := Decode(name, raw)
	if err != nil {
		return nil, err
	}
	c.entries.Add(name, doc)
	return tree.CloneSlice(doc), nil
}

// Put stores an already decoded tree under name. The tree is copied.
func (c *SceneCache) Put(name string, doc []any) {
	c.entries.Add(name, tree.CloneSlice(doc))
}

// Contains reports whether name is cached without refreshing it.
func (c *SceneCache) Contains(name string) bool { return c.entries.Contains(name) }

// Names returns the cached scene names from least to most recently used.
func (c *SceneCache) Names() []string { return c.entries.Keys() }

// Len returns the number of cached scenes.
func (c *SceneCache) Len() int { return c.entries.Len() }

// Purge drops every cached scene.
func (c *SceneCache) Purge() { c.entries.Purge() }
