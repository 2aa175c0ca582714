package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] interface {
	// Register adds an item to the registry
	Register(name string, item T) error

	// Replace adds or overwrites an item
	Replace(name string, item T) error

	// Alias makes alias resolve to the registered name
	Alias(alias, name string) error

	// Resolve returns the canonical name for a name or alias
	Resolve(name string) (string, bool)

	// Get retrieves an item by name or alias
	Get(name string) (T, error)

	// Remove removes an item and every alias pointing at it
	Remove(name string) error

	// List returns all registered canonical names, sorted
	List() []string

	// Has checks if a name or alias is registered
	Has(name string) bool

	// Count returns the number of registered items
	Count() int
}

type registry[T any] struct {
	mu      sync.RWMutex
	items   map[string]T
	aliases map[string]string
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		items:   make(map[string]T),
		aliases: make(map[string]string),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

func (r *registry[T]) Replace(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, isAlias := r.aliases[name]; isAlias {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is registered as an alias", name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Alias(alias, name string) error {
	if alias == "" {
		return errors.New(errors.ErrInvalidInput, "alias cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "cannot alias '%s': '%s' is not registered", alias, name)
	}
	if r.taken(alias) {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is already registered", alias)
	}

	r.aliases[alias] = name
	return nil
}

func (r *registry[T]) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.resolve(name)
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.resolve(name)
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "'%s' not found in registry", name)
	}
	return r.items[canonical], nil
}

func (r *registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "'%s' not found in registry", name)
	}

	delete(r.items, name)
	for alias, target := range r.aliases {
		if target == name {
			delete(r.aliases, alias)
		}
	}
	return nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.resolve(name)
	return ok
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// resolve must be called with the lock held
func (r *registry[T]) resolve(name string) (string, bool) {
	if _, exists := r.items[name]; exists {
		return name, true
	}
	if target, exists := r.aliases[name]; exists {
		return target, true
	}
	return "", false
}

// taken must be called with the lock held
func (r *registry[T]) taken(name string) bool {
	_, isItem := r.items[name]
	_, isAlias := r.aliases[name]
	return isItem || isAlias
}

// MustRegister registers an item and panics if registration fails
// This is useful for init() functions where registration errors are programming errors
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// MustGet retrieves an item and panics if not found
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}
