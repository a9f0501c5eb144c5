// Package registry provides a concurrency safe name to value table that keeps
// insertion order.
package registry

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Registry[T any] interface {
	Get(name string) (T, bool)
	Add(name string, value T)
	GetOrAdd(name string, value func() T) (T, bool)
	Del(name string) bool
	Len() int
	Names() []string
	Values() []T
}

type registry[T any] struct {
	mu     sync.RWMutex
	values *orderedmap.OrderedMap[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: orderedmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values.Get(name)
}

// Add inserts or replaces the value. A replaced value keeps its position.
func (r *registry[T]) Add(name string, value T) {
	r.mu.Lock()
	r.values.Set(name, value)
	r.mu.Unlock()
}

// GetOrAdd returns the existing value and true, or adds the computed one and returns false.
func (r *registry[T]) GetOrAdd(name string, valueFn func() T) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.values.Get(name); ok {
		return v, true
	}
	v := valueFn()
	r.values.Set(name, v)
	return v, false
}

func (r *registry[T]) Del(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values.Delete(name)
	return ok
}

func (r *registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values.Len()
}

func (r *registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, r.values.Len())
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (r *registry[T]) Values() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]T, 0, r.values.Len())
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}
