package plugin

import (
	"fmt"
	"sync"

	devkiterrors "github.com/alexisbeaulieu97/devkit/pkg/errors"
)

// Registry holds step plugins in registration order. Order matters: the
// "run all" sequence and the menu numbering both follow it, so the registry
// keeps an ordered slice alongside the ID lookup instead of a bare map.
type Registry struct {
	mu    sync.RWMutex
	order []Plugin
	byID  map[string]Plugin
}

// NewRegistry creates an empty step registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Plugin),
	}
}

// Register appends a plugin to the ordered step list.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return devkiterrors.NewValidationError("plugin", "plugin is nil", nil)
	}

	meta := p.Metadata()
	if meta.ID == "" {
		return devkiterrors.NewValidationError("plugin", "plugin ID is empty", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[meta.ID]; exists {
		return devkiterrors.NewValidationError("plugin", fmt.Sprintf("step %q already registered", meta.ID), nil)
	}

	r.byID[meta.ID] = p
	r.order = append(r.order, p)
	return nil
}

// Get retrieves a plugin by step ID.
func (r *Registry) Get(id string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, devkiterrors.NewValidationError("plugin", fmt.Sprintf("no step registered with ID %q", id), nil)
	}

	return p, nil
}

// Steps returns the plugins in registration order.
func (r *Registry) Steps() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered steps.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
