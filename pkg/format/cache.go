package format

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of parsed templates kept by NewCache(0)
const DefaultCacheSize = 256

// Cache keeps parsed templates keyed by their format string.
type Cache struct {
	lru *lru.Cache[string, *Template]
}

// NewCache creates a template cache. size <= 0 uses DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *Template](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{lru: c}
}

// Get returns the parsed template for format, parsing it on first use.
// Parse errors are not cached.
func (c *Cache) Get(format string) (*Template, error) {
	if t, ok := c.lru.Get(format); ok {
		return t, nil
	}
	t, err := Parse(format)
	if err != nil {
		return nil, err
	}
	c.lru.Add(format, t)
	return t, nil
}

// Len returns the number of cached templates
func (c *Cache) Len() int {
	return c.lru.Len()
}

var shared = NewCache(DefaultCacheSize)

// Render parses format through the shared cache and renders it.
func Render(format string, ctx Context) (string, error) {
	t, err := shared.Get(format)
	if err != nil {
		return "", err
	}
	return t.Render(ctx), nil
}
