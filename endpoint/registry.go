package endpoint

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a Representation from constructor parameters.
type Factory func(params Params) (Representation, error)

// Registry maps endpoint type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a type name to a factory, replacing any previous binding.
func (r *Registry) Register(typeName string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = f
}

// Has reports whether a factory is registered for the type name.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typeName]
	return ok
}

// New instantiates a Representation of the named type.
func (r *Registry) New(typeName string, params Params) (Representation, error) {
	r.mu.RLock()
	f, ok := r.factories[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	if params == nil {
		params = Params{}
	}
	rep, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("new %s endpoint: %w", typeName, err)
	}
	return rep, nil
}

// Clone returns a registry with the same bindings. Later registrations on
// either registry do not affect the other.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for name, f := range r.factories {
		c.factories[name] = f
	}
	return c
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the registry built-in types register themselves with.
var Default = NewRegistry()

// Register binds a type name in the Default registry.
func Register(typeName string, f Factory) {
	Default.Register(typeName, f)
}

// New instantiates a Representation from the Default registry.
func New(typeName string, params Params) (Representation, error) {
	return Default.New(typeName, params)
}

// Types lists the Default registry's type names.
func Types() []string {
	return Default.Types()
}
