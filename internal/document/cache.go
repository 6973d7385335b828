package document

import (
	"container/list"
	"context"
	"sync"
)

const DefaultCacheSize = 32

type cacheEntry struct {
	key  string
	body []byte
}

// Cached is a read-through LRU in front of another Backend. Put writes
// through and refreshes the entry only after the inner write succeeds.
type Cached struct {
	inner Backend

	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List
	maxSize int
}

func NewCached(inner Backend, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cached{
		inner:   inner,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: size,
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if body, ok := c.lookup(key); ok {
		return body, nil
	}
	body, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.set(key, body)
	return clone(body), nil
}

func (c *Cached) Put(ctx context.Context, key string, body []byte) error {
	if err := c.inner.Put(ctx, key, body); err != nil {
		c.Invalidate(key)
		return err
	}
	c.set(key, body)
	return nil
}

// Invalidate drops key from the cache.
func (c *Cached) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(elem)
	}
}

// Len reports the number of cached documents.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cached) lookup(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return clone(elem.Value.(*cacheEntry).body), true
}

func (c *Cached) set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).body = clone(body)
		return
	}

	if c.order.Len() >= c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.items, oldest.Value.(*cacheEntry).key)
			c.order.Remove(oldest)
		}
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, body: clone(body)})
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
