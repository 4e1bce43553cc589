package engine

import (
	"fmt"

	"garble/internal/op"
)

// ConfigError reports a plan-build failure caused by the configuration
// itself: an unknown operation kind or malformed parameters. It is fatal
// to plan construction and never deferred to execution time.
type ConfigError struct {
	Position int
	Kind     string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration at step %d (%s): %v", e.Position, e.Kind, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BackendError reports that an explicit backend preference could not be
// honored. When a preference was explicit there is no silent fallback.
type BackendError struct {
	Position  int
	Kind      string
	Requested op.Backend
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %q unavailable at step %d (%s): %v", e.Requested, e.Position, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// PipelineError wraps a step failure during execution with enough
// identity to tell which operation in the chain failed. It is the only
// error type a caller of Run needs to branch on.
type PipelineError struct {
	Position int
	Identity op.Identity
	Backend  op.Backend
	Err      error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("step %d (%s, %s backend) failed: %v", e.Position, e.Identity, e.Backend, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
