package pipeline

import (
	"sync"

	"garble/internal/engine"
	"garble/internal/op"
	"garble/internal/ops"
	"garble/internal/registry"
)

// Re-exported engine types, so callers outside the module can configure
// pipelines and branch on failures without reaching into internal
// packages.

// Operation configures one step: a kind name, parameters, and an
// optional explicit backend preference.
type Operation = op.Config

// Params holds operation parameters.
type Params = op.Params

// Descriptor is the stable metadata view of one configured step.
type Descriptor = op.Descriptor

// Backend tags an implementation variant.
type Backend = op.Backend

// Backend tags. An empty Backend on an Operation means "no preference".
const (
	BackendAccelerated = op.BackendAccelerated
	BackendPortable    = op.BackendPortable
)

// ConfigError reports an unknown kind or malformed parameters at
// construction time.
type ConfigError = engine.ConfigError

// BackendError reports an explicit backend preference that cannot be
// satisfied, also at construction time.
type BackendError = engine.BackendError

// PipelineError wraps a step failure during Apply with the failing
// step's position, identity and backend.
type PipelineError = engine.PipelineError

var (
	builtinOnce sync.Once
	builtinReg  *registry.Registry
)

// BuiltinRegistry returns the shared registry with every built-in
// operation kind registered. Populated once, read-only afterward.
func BuiltinRegistry() *registry.Registry {
	builtinOnce.Do(func() {
		builtinReg = registry.New()
		ops.MustRegister(builtinReg)
	})
	return builtinReg
}

// Kinds lists the registered operation kinds in sorted order.
func Kinds() []string {
	return BuiltinRegistry().Kinds()
}
