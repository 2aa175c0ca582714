package datasource

import (
	"context"
	"maps"
	"sync"

	"github.com/arthur-debert/barkeep/pkg/format"
)

// Source produces the data a widget label is rendered against.
type Source interface {
	Fetch(ctx context.Context) (format.Context, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context) (format.Context, error)

func (f Func) Fetch(ctx context.Context) (format.Context, error) {
	return f(ctx)
}

// Static always returns the same data until Set replaces it.
type Static struct {
	mu   sync.RWMutex
	data format.Context
}

// NewStatic returns a Static source holding data.
func NewStatic(data format.Context) *Static {
	return &Static{data: data}
}

// Set replaces the data returned by Fetch.
func (s *Static) Set(data format.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Fetch returns a shallow copy of the current data.
func (s *Static) Fetch(ctx context.Context) (format.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data), nil
}
