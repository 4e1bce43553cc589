package ops

import (
	"fmt"

	"garble/internal/op"
	"garble/internal/registry"
)

func validateRate(params op.Params, name string) error {
	rate := op.Float(params, name)
	if rate < 0 || rate > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, rate)
	}
	return nil
}

// Definitions returns a fresh definition set for every built-in kind.
func Definitions() []*op.Definition {
	return []*op.Definition{
		typoDefinition(),
		homoglyphDefinition(),
		homophoneDefinition(),
		synonymDefinition(),
		pedantryDefinition(),
		stretchDefinition(),
		duplicateDefinition(),
		dropDefinition(),
		swapDefinition(),
		redactDefinition(),
		ocrDefinition(),
		zerowidthDefinition(),
		quoteDefinition(),
	}
}

// Register wires every built-in kind into reg.
func Register(reg *registry.Registry) error {
	for _, def := range Definitions() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register for initialization paths where failure is a
// programming error.
func MustRegister(reg *registry.Registry) {
	if err := Register(reg); err != nil {
		panic(err)
	}
}
