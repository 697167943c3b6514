package kv

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Options carry backend settings; each factory reads the fields it needs.
type Options struct {
	Path     string
	InMemory bool
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string

	// ConnectionString is only read by the azure backend.
	ConnectionString string
}

// StoreFactory opens a Store for a named backend.
type StoreFactory func(ctx context.Context, opts Options) (Store, error)

// Registry manages key-value backend factories
type Registry interface {
	// Register adds a new backend factory
	Register(backend string, factory StoreFactory) error
	// Open instantiates a store for the specified backend
	Open(ctx context.Context, backend string, opts Options) (Store, error)
	// ListBackends returns the registered backend names, sorted
	ListBackends() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]StoreFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[string]StoreFactory) Registry {
	r := &registry{factories: make(map[string]StoreFactory, len(factories))}
	for name, f := range factories {
		r.factories[name] = f
	}
	return r
}

func (r *registry) Register(backend string, factory StoreFactory) error {
	if backend == "" {
		return fmt.Errorf("backend name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[backend]; exists {
		return fmt.Errorf("backend %q is already registered", backend)
	}

	r.factories[backend] = factory
	return nil
}

func (r *registry) Open(ctx context.Context, backend string, opts Options) (Store, error) {
	r.mu.RLock()
	factory, exists := r.factories[backend]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("backend %q is not registered", backend)
	}

	return factory(ctx, opts)
}

func (r *registry) ListBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	backends := make([]string, 0, len(r.factories))
	for name := range r.factories {
		backends = append(backends, name)
	}
	sort.Strings(backends)
	return backends
}

// MemoryFactory opens a process-local store.
func MemoryFactory(_ context.Context, _ Options) (Store, error) {
	return NewMemoryStore(), nil
}
