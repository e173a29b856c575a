package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kasubs/internal/domain/contenttree"
	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// ErrTreeNotCached is returned by TreeCache.Load when the store holds no tree
// for the cache key.
var ErrTreeNotCached = errors.New("content tree not cached")

// TreeCache owns the in-memory copy of one cached content tree.
type TreeCache struct {
	store ports.TreeStore
	key   model.TreeKey

	mu   sync.Mutex
	tree model.Node
}

// NewTreeCache creates a cache for key backed by store.
func NewTreeCache(store ports.TreeStore, key model.TreeKey) *TreeCache {
	return &TreeCache{store: store, key: key}
}

// Key returns the cache key.
func (c *TreeCache) Key() model.TreeKey { return c.key }

// Load reads the tree from storage, replacing the in-memory copy.
func (c *TreeCache) Load(ctx context.Context) (model.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *TreeCache) loadLocked(ctx context.Context) (model.Node, error) {
	tree, err := c.store.Load(ctx, c.key)
	if errors.Is(err, ports.ErrTreeNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTreeNotCached, c.key)
	}
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", c.key, err)
	}
	c.tree = tree
	return tree, nil
}

// Get returns the in-memory tree, loading it from storage on first use.
func (c *TreeCache) Get(ctx context.Context) (model.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tree != nil {
		return c.tree, nil
	}
	return c.loadLocked(ctx)
}

// Save overwrites the stored tree and the in-memory copy.
func (c *TreeCache) Save(ctx context.Context, tree model.Node) error {
	if tree == nil {
		return fmt.Errorf("save tree %s: nil tree", c.key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(ctx, c.key, tree); err != nil {
		return fmt.Errorf("save tree %s: %w", c.key, err)
	}
	c.tree = tree
	return nil
}

// UniqueContentData projects keys from every not yet seen node of the
// cache's content type. seen is updated with the returned nodes.
func (c *TreeCache) UniqueContentData(ctx context.Context, keys []string, seen contenttree.IDSet) ([]contenttree.Record, error) {
	tree, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return contenttree.UniqueContentData(tree, c.key.ContentType, keys, seen)
}

// Topics returns the topics with the given render type in pre-order.
func (c *TreeCache) Topics(ctx context.Context, renderType model.RenderType) ([]*model.Topic, error) {
	tree, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return contenttree.Topics(tree, renderType), nil
}

// Lessons returns the Tutorial topics.
func (c *TreeCache) Lessons(ctx context.Context) ([]*model.Topic, error) {
	return c.Topics(ctx, model.RenderTutorial)
}

// Units returns the Topic level topics.
func (c *TreeCache) Units(ctx context.Context) ([]*model.Topic, error) {
	return c.Topics(ctx, model.RenderTopic)
}

// Domains returns the Domain topics.
func (c *TreeCache) Domains(ctx context.Context) ([]*model.Topic, error) {
	return c.Topics(ctx, model.RenderDomain)
}

// Courses returns the Subject topics.
func (c *TreeCache) Courses(ctx context.Context) ([]*model.Topic, error) {
	return c.Topics(ctx, model.RenderSubject)
}

// FindVideo returns the first video whose attribute equals value, or nil.
func (c *TreeCache) FindVideo(ctx context.Context, attrName, value string) (*model.Video, error) {
	tree, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return contenttree.FindVideo(tree, attrName, value), nil
}

// TreeCatalog hands out one TreeCache per content type for a locale, so every
// key is read from storage at most once per process.
type TreeCatalog struct {
	store  ports.TreeStore
	locale string

	mu     sync.Mutex
	caches map[model.ContentType]*TreeCache
}

// NewTreeCatalog creates a catalog for locale.
func NewTreeCatalog(store ports.TreeStore, locale string) *TreeCatalog {
	return &TreeCatalog{
		store:  store,
		locale: locale,
		caches: make(map[model.ContentType]*TreeCache),
	}
}

// Locale returns the catalog locale.
func (c *TreeCatalog) Locale() string { return c.locale }

// For returns the cache for contentType.
func (c *TreeCatalog) For(contentType model.ContentType) *TreeCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	cache, ok := c.caches[contentType]
	if !ok {
		cache = NewTreeCache(c.store, model.TreeKey{Locale: c.locale, ContentType: contentType})
		c.caches[contentType] = cache
	}
	return cache
}
