package capability

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps capability types to the single instance a robot provides.
// It is filled once while the robot is initialized and only read afterwards.
// Presence in the registry is what "the robot supports X" means.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	caps map[Type]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[Type]Capability)}
}

// Register adds c under its type tag. A type can only be registered once.
func (r *Registry) Register(c Capability) error {
	if c == nil {
		return fmt.Errorf("register capability: nil capability")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := c.Type()
	if _, exists := r.caps[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCapability, t)
	}
	r.caps[t] = c
	return nil
}

// Get returns the capability registered for t.
func (r *Registry) Get(t Type) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[t]
	return c, ok
}

// Has reports whether a capability of type t is registered.
func (r *Registry) Has(t Type) bool {
	_, ok := r.Get(t)
	return ok
}

// Types returns the registered type tags, sorted.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.caps))
	for t := range r.caps {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// All returns the registered capabilities sorted by type tag.
func (r *Registry) All() []Capability {
	types := r.Types()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Capability, 0, len(types))
	for _, t := range types {
		if c, ok := r.caps[t]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.caps)
}

// Lookup returns the capability of type t as the interface T.
// It reports false when t is not registered or does not implement T.
func Lookup[T Capability](r *Registry, t Type) (T, bool) {
	var zero T
	c, ok := r.Get(t)
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
