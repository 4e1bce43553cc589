// Package registry holds the process-wide capability table mapping
// operation kinds to their portable and (optionally) accelerated
// implementations.
//
// The table is populated during initialization and read-only afterward.
// Resolution performs registry reads only; it never allocates into or
// mutates the table.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"garble/internal/op"
)

var (
	// ErrUnknownKind is returned when a kind was never registered.
	ErrUnknownKind = errors.New("unknown operation kind")
	// ErrBackendUnavailable is returned when an explicit backend
	// preference cannot be honored. No silent fallback is substituted.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Registry is a capability table. The zero value is not usable; call New.
type Registry struct {
	mu                sync.RWMutex
	defs              map[string]*op.Definition
	preferAccelerated bool
}

// New returns an empty registry that prefers accelerated backends when
// they are available.
func New() *Registry {
	return &Registry{
		defs:              make(map[string]*op.Definition),
		preferAccelerated: true,
	}
}

// Register adds a definition. Re-registering a kind or registering one
// without a portable implementation is a programming error.
func (r *Registry) Register(def *op.Definition) error {
	if def == nil || def.Identity.Kind == "" {
		return fmt.Errorf("registry: definition missing kind")
	}
	if def.Portable == nil {
		return fmt.Errorf("registry: kind %q has no portable implementation", def.Identity.Kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.defs[def.Identity.Kind]; dup {
		return fmt.Errorf("registry: kind %q already registered", def.Identity.Kind)
	}
	r.defs[def.Identity.Kind] = def
	return nil
}

// MustRegister is Register for init-time wiring, where a failure is a
// programming error.
func (r *Registry) MustRegister(def *op.Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// PreferPortable disables the global accelerated-first policy. Intended
// to be called during initialization, before the registry is shared.
func (r *Registry) PreferPortable(portable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preferAccelerated = !portable
}

// Lookup returns the definition for kind.
func (r *Registry) Lookup(kind string) (*op.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return def, nil
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.defs))
	for kind := range r.defs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Resolve chooses a backend for kind.
//
// Order: explicit preference (failing loudly if that backend is absent),
// then the global accelerated-first policy, then the portable fallback.
// Resolution is deterministic: identical availability and preference
// always yield the same tag.
func (r *Registry) Resolve(kind string, preference op.Backend) (op.Backend, op.ApplyFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	switch preference {
	case op.BackendAccelerated:
		if def.Accelerated == nil {
			return "", nil, fmt.Errorf("%w: kind %q has no accelerated implementation", ErrBackendUnavailable, kind)
		}
		return op.BackendAccelerated, def.Accelerated, nil
	case op.BackendPortable:
		return op.BackendPortable, def.Portable, nil
	case "":
		// fall through to the global policy
	default:
		return "", nil, fmt.Errorf("%w: unknown backend %q for kind %q", ErrBackendUnavailable, preference, kind)
	}

	if r.preferAccelerated && def.Accelerated != nil {
		return op.BackendAccelerated, def.Accelerated, nil
	}
	return op.BackendPortable, def.Portable, nil
}
