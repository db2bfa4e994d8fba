// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages code emitters.
type Registry struct {
	mu       sync.RWMutex
	emitters map[string]Emitter
}

// globalRegistry is the default emitter registry. The stock emitters
// register themselves into it from their init functions.
var globalRegistry = NewRegistry()

// NewRegistry creates a new emitter registry.
func NewRegistry() *Registry {
	return &Registry{
		emitters: make(map[string]Emitter),
	}
}

// Register adds an emitter to the registry.
// It returns an error if an emitter with the same name is already registered.
func (r *Registry) Register(e Emitter) error {
	if e == nil {
		return fmt.Errorf("cannot register nil emitter")
	}

	name := e.Name()
	if name == "" {
		return fmt.Errorf("emitter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emitters[name]; exists {
		return fmt.Errorf("emitter %q is already registered", name)
	}

	r.emitters[name] = e
	return nil
}

// MustRegister adds an emitter to the registry, panicking on error.
// This is useful for init() functions where registration failures are fatal.
func (r *Registry) MustRegister(e Emitter) {
	if err := r.Register(e); err != nil {
		panic(fmt.Sprintf("failed to register emitter: %v", err))
	}
}

// Get returns an emitter by name, or nil if not found.
func (r *Registry) Get(name string) Emitter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emitters[name]
}

// List returns a sorted list of registered emitter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered emitters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.emitters)
}

// Has checks if an emitter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.emitters[name]
	return exists
}

// Unregister removes an emitter from the registry.
// Returns an error if the emitter is not registered.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emitters[name]; !exists {
		return fmt.Errorf("emitter %q is not registered", name)
	}

	delete(r.emitters, name)
	return nil
}

// --- Global Registry Functions ---

// Register adds an emitter to the global registry.
func Register(e Emitter) error {
	return globalRegistry.Register(e)
}

// MustRegister adds an emitter to the global registry, panicking on error.
func MustRegister(e Emitter) {
	globalRegistry.MustRegister(e)
}

// Get returns an emitter by name from the global registry.
func Get(name string) Emitter {
	return globalRegistry.Get(name)
}

// List returns all registered emitter names from the global registry.
func List() []string {
	return globalRegistry.List()
}

// Has checks if an emitter is registered in the global registry.
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// Global returns the global registry instance.
// This is useful for testing or when explicit registry access is needed.
func Global() *Registry {
	return globalRegistry
}
