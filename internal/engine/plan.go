// Package engine builds and runs execution plans.
//
// A plan binds an ordered sequence of operation configs to concrete
// implementations, derived seeds and resolved parameters. Building is a
// pure function of (configs, master seed, backend availability); running
// is strictly sequential, each step's output feeding the next step's
// input.
package engine

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"

	"garble/internal/op"
	"garble/internal/registry"
	"garble/internal/seed"
)

// Step is one resolved, seeded, backend-bound unit of work. Immutable;
// rebuilt whenever the plan is rebuilt.
type Step struct {
	Position int
	Identity op.Identity
	Backend  op.Backend
	Seed     uint64 // meaningful only when the plan is deterministic
	Params   op.Params

	def   *op.Definition
	apply op.ApplyFunc
}

// Plan is an ordered sequence of steps plus the master seed it was built
// from. Rebuilding from the same configs, seed and backend availability
// yields identical steps.
type Plan struct {
	Steps         []Step
	MasterSeed    uint64
	Deterministic bool
}

// Build resolves configs into a plan.
//
// master == nil requests non-deterministic mode: derivation is bypassed
// entirely and each step receives a fresh, unseeded random source at run
// time. Plans built this way are marked Deterministic=false.
func Build(reg *registry.Registry, configs []op.Config, master *uint64) (*Plan, error) {
	plan := &Plan{
		Steps:         make([]Step, 0, len(configs)),
		Deterministic: master != nil,
	}
	if master != nil {
		plan.MasterSeed = *master
	}

	for i, cfg := range configs {
		def, err := reg.Lookup(cfg.Kind)
		if err != nil {
			return nil, &ConfigError{Position: i, Kind: cfg.Kind, Err: err}
		}

		resolved, err := def.Resolve(cfg.Params)
		if err != nil {
			return nil, &ConfigError{Position: i, Kind: cfg.Kind, Err: err}
		}

		backend, apply, err := reg.Resolve(cfg.Kind, cfg.Backend)
		if err != nil {
			if cfg.Backend != "" {
				return nil, &BackendError{Position: i, Kind: cfg.Kind, Requested: cfg.Backend, Err: err}
			}
			return nil, &ConfigError{Position: i, Kind: cfg.Kind, Err: err}
		}

		step := Step{
			Position: i,
			Identity: def.Identity,
			Backend:  backend,
			Params:   resolved,
			def:      def,
			apply:    apply,
		}
		if plan.Deterministic {
			step.Seed = seed.Derive(plan.MasterSeed, def.Identity.Kind, def.Identity.Version, i)
		}
		plan.Steps = append(plan.Steps, step)
	}

	return plan, nil
}

// Run executes the plan against text.
//
// Steps run strictly in plan order; the first failing step aborts the
// whole pipeline with a PipelineError and no partial output. Each step is
// handed its own private random source, so re-running a deterministic
// plan on the same input yields the same output.
func (p *Plan) Run(text string) (string, error) {
	result := text
	for i := range p.Steps {
		step := &p.Steps[i]
		out, err := step.apply(result, p.stepRNG(step), step.Params)
		if err != nil {
			return "", &PipelineError{
				Position: step.Position,
				Identity: step.Identity,
				Backend:  step.Backend,
				Err:      err,
			}
		}
		result = out
	}
	return result, nil
}

// Describe emits one descriptor per step in plan order. Descriptors are
// backend-independent apart from the informational backend tag.
func (p *Plan) Describe() []op.Descriptor {
	out := make([]op.Descriptor, 0, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		out = append(out, step.def.Describe(step.Params, step.Backend))
	}
	return out
}

func (p *Plan) stepRNG(step *Step) *mathrand.Rand {
	if p.Deterministic {
		// Two distinct PCG streams per step, both pinned to the derived
		// seed so that backend choice can never shift the sequence.
		return mathrand.New(mathrand.NewPCG(step.Seed, step.Seed^0x9e3779b97f4a7c15))
	}
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failure means the platform entropy source is gone;
		// there is no sensible recovery for an explicitly random plan.
		panic("engine: reading entropy for non-deterministic plan: " + err.Error())
	}
	return mathrand.New(mathrand.NewPCG(
		binary.BigEndian.Uint64(buf[:8]),
		binary.BigEndian.Uint64(buf[8:]),
	))
}
