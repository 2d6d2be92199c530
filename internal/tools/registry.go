// Package tools provides executable resolution and dependency
// installation for hooks
package tools

import (
	"os/exec"
	"sync"

	prerrors "github.com/hookline/hookline/internal/errors"
)

// Resolver resolves a hook id to an invocable executable path. It is
// injected into the runner so tests can substitute fake executables.
type Resolver interface {
	Resolve(id string) (string, error)
}

// Registry is the default Resolver. A hook id maps to an executable of
// the same name unless an override is registered.
type Registry struct {
	mu        sync.RWMutex
	overrides map[string]string
	resolved  map[string]string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		overrides: make(map[string]string),
		resolved:  make(map[string]string),
	}
}

// Register maps a hook id to an executable name or path
func (r *Registry) Register(id, executable string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[id] = executable
	delete(r.resolved, id)
}

// Resolve returns the full path of the executable for a hook id
func (r *Registry) Resolve(id string) (string, error) {
	r.mu.RLock()
	if path, ok := r.resolved[id]; ok {
		r.mu.RUnlock()
		return path, nil
	}
	name, ok := r.overrides[id]
	r.mu.RUnlock()

	if !ok {
		name = id
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", prerrors.NewToolNotFoundError(id, name)
	}

	r.mu.Lock()
	r.resolved[id] = path
	r.mu.Unlock()

	return path, nil
}
