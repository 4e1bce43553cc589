// Package op defines the contract every corruption operation implements.
//
// An operation kind is described by a Definition: its identity, the
// canonical ordered defaults for its parameters, a validation hook, and
// one or two interchangeable apply functions. The portable apply function
// is always present; the accelerated one is optional and, when present,
// must produce byte-identical output for identical input, parameters and
// random source.
package op

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// Backend identifies which implementation of a kind a step is bound to.
type Backend string

const (
	// BackendAccelerated is the performance-optimized implementation.
	BackendAccelerated Backend = "accelerated"
	// BackendPortable is the reference implementation, always registered.
	BackendPortable Backend = "portable"
)

// Valid reports whether b names a known backend tag. The empty string is
// valid as "no preference" on a Config, but is not itself a backend.
func (b Backend) Valid() bool {
	return b == BackendAccelerated || b == BackendPortable
}

// Identity names an operation kind. It participates in seed derivation
// and descriptor emission only; the engine never branches on it beyond
// registry lookup.
type Identity struct {
	Kind    string
	Version string
}

func (id Identity) String() string {
	return id.Kind + "@" + id.Version
}

// Params holds caller-supplied parameters for one operation.
type Params map[string]any

// Clone returns a shallow copy. Parameter values are treated as immutable
// scalars by every operation, so a shallow copy is sufficient isolation.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Field is one named parameter value in canonical order.
type Field struct {
	Name  string
	Value any
}

// Descriptor is a stable, backend-independent snapshot of one configured
// operation. Two backends of the same kind emit field-for-field identical
// descriptors for identical configuration; only Backend differs.
type Descriptor struct {
	Kind    string  `yaml:"kind" json:"kind"`
	Version string  `yaml:"version" json:"version"`
	Backend Backend `yaml:"backend" json:"backend"`
	Fields  []Field `yaml:"params" json:"params"`
}

// Config is one entry in a composition: a kind name, caller parameters,
// and an optional explicit backend preference. Immutable once constructed.
type Config struct {
	Kind    string
	Params  Params
	Backend Backend // empty means no preference
}

// ApplyFunc transforms text using a private random source. The rng must
// not be shared with any other step or any concurrent application.
type ApplyFunc func(text string, rng *rand.Rand, params Params) (string, error)

// ErrEmptyInput is returned by operations that reject empty or
// whitespace-only text.
var ErrEmptyInput = errors.New("empty or whitespace-only input")

// Definition is the capability-table row for one operation kind.
type Definition struct {
	Identity Identity

	// Defaults lists every parameter of the kind, in canonical order,
	// with its default value. Resolution never leaves a parameter unset.
	Defaults []Field

	// Validate checks fully resolved params. May be nil.
	Validate func(Params) error

	// Portable is the reference implementation. Required.
	Portable ApplyFunc

	// Accelerated is the optimized implementation. Optional; absence is a
	// normal state, not an error.
	Accelerated ApplyFunc
}

// HasAccelerated reports whether an accelerated implementation is
// registered for this kind.
func (d *Definition) HasAccelerated() bool { return d.Accelerated != nil }

// Resolve overlays params onto the kind's canonical defaults and
// validates the result. Unknown parameter names are rejected so that a
// typo in a config surfaces at plan build, not as a silently ignored key.
func (d *Definition) Resolve(params Params) (Params, error) {
	resolved := make(Params, len(d.Defaults))
	for _, f := range d.Defaults {
		resolved[f.Name] = f.Value
	}
	unknown := make([]string, 0)
	for name, value := range params {
		if _, ok := resolved[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		resolved[name] = normalizeScalar(value)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown parameter %q for kind %q", unknown[0], d.Identity.Kind)
	}
	if d.Validate != nil {
		if err := d.Validate(resolved); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// Describe emits the descriptor for resolved params under the given
// backend tag. Field order follows the canonical defaults order.
func (d *Definition) Describe(resolved Params, backend Backend) Descriptor {
	fields := make([]Field, 0, len(d.Defaults))
	for _, f := range d.Defaults {
		fields = append(fields, Field{Name: f.Name, Value: resolved[f.Name]})
	}
	return Descriptor{
		Kind:    d.Identity.Kind,
		Version: d.Identity.Version,
		Backend: backend,
		Fields:  fields,
	}
}

// normalizeScalar collapses the integer widths YAML and callers hand us so
// that descriptor values compare stably across sources.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// Float reads a numeric parameter as float64. Operations call this after
// Resolve, so a failure here is a programming error in the Definition.
func Float(params Params, name string) float64 {
	switch n := params[name].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		panic(fmt.Sprintf("op: parameter %q is %T, not numeric", name, params[name]))
	}
}

// Int reads an integer parameter.
func Int(params Params, name string) int {
	switch n := params[name].(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		panic(fmt.Sprintf("op: parameter %q is %T, not an integer", name, params[name]))
	}
}

// String reads a string parameter.
func String(params Params, name string) string {
	s, ok := params[name].(string)
	if !ok {
		panic(fmt.Sprintf("op: parameter %q is %T, not a string", name, params[name]))
	}
	return s
}
