// Package registry provides a thread-safe generic name → item registry.
// It holds the process-wide singletons (collections, media store) built at startup.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Kapilrajreddy/youtube-api/internal/common"
)

// Registry maps names to items of type T.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("videos", db.Collection("videos"))
//	if c, ok := cols.Get("videos"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register adds or replaces an item. isNew is false when an item was replaced.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get returns the item and whether it exists.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet returns the item or an ErrNotFound-wrapped error naming it.
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, fmt.Errorf("%s not registered: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// GetOrCreate returns the existing item or stores the one built by creator.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if item, ok := r.Get(name); ok {
		return item, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[name]; ok {
		return item, nil
	}
	item, err = creator()
	if err != nil {
		return item, err
	}
	r.items[name] = item
	return item, nil
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearAll removes every item, calling cleanup (when non-nil) on each first.
// The first cleanup error is returned after all items are removed.
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, item := range r.items {
		if cleanup != nil {
			if cerr := cleanup(item); cerr != nil && err == nil {
				err = fmt.Errorf("cleanup %s: %w", name, cerr)
			}
		}
		delete(r.items, name)
		count++
	}
	return count, err
}
