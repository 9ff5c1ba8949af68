package modules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

type lazyComponent struct {
	once      sync.Once
	load      Loader
	loaded    atomic.Bool
	component Component
	err       error
}

func (l *lazyComponent) get(variant string) (Component, error) {
	l.once.Do(func() {
		defer l.loaded.Store(true)
		defer func() {
			if r := recover(); r != nil {
				l.err = fmt.Errorf("%w: %s: panic: %v", ErrLoadFailed, variant, r)
			}
		}()
		component, err := l.load()
		switch {
		case err != nil:
			l.err = fmt.Errorf("%w: %s: %w", ErrLoadFailed, variant, err)
		case component == nil:
			l.err = fmt.Errorf("%w: %s: loader returned nil", ErrLoadFailed, variant)
		case component.Name() != variant:
			l.err = fmt.Errorf("%w: %q registered as %q", ErrComponentMismatch, component.Name(), variant)
		default:
			l.component = component
		}
	})
	return l.component, l.err
}

// Registry maps variants to lazily loaded components. Each loader runs at
// most once; its component or error is memoised.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*lazyComponent
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*lazyComponent)}
}

// NewDefaultRegistry registers the built-in variants. When enabled is
// non-nil only the variants it accepts are registered.
func NewDefaultRegistry(deps Dependencies, enabled func(variant string) bool) *Registry {
	registry := NewRegistry()
	loaders := defaultLoaders(deps)
	for _, variant := range Variants {
		if enabled != nil && !enabled(variant) {
			continue
		}
		// Variants are unique and loaders non-nil, so Register cannot fail.
		_ = registry.Register(variant, loaders[variant])
	}
	return registry
}

// Register stores a loader for variant. Variant names are case sensitive.
func (r *Registry) Register(variant string, loader Loader) error {
	if strings.TrimSpace(variant) == "" || loader == nil {
		return ErrInvalidVariant
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[variant]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVariant, variant)
	}
	r.entries[variant] = &lazyComponent{load: loader}
	return nil
}

// Lookup returns the component for variant, running its loader on first
// use. ok is false when the variant is not registered.
func (r *Registry) Lookup(variant string) (component Component, ok bool, err error) {
	r.mu.RLock()
	entry, ok := r.entries[variant]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	component, err = entry.get(variant)
	return component, true, err
}

// Has reports whether variant is registered.
func (r *Registry) Has(variant string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[variant]
	return ok
}

// Loaded reports whether the loader for variant has run.
func (r *Registry) Loaded(variant string) bool {
	r.mu.RLock()
	entry, ok := r.entries[variant]
	r.mu.RUnlock()
	return ok && entry.loaded.Load()
}

// Variants returns the registered variant names in order.
func (r *Registry) Variants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
