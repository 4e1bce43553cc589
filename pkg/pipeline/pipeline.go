// Package pipeline is the public composition surface of garble.
//
// A Pipeline is an ordered collection of configured corruption
// operations plus a master seed. Applying the same pipeline to the same
// text always produces the same output; cloning with a different seed
// produces a sibling pipeline with identical structure and different
// randomness.
package pipeline

import (
	"time"

	"go.uber.org/zap"

	"garble/internal/engine"
	"garble/internal/op"
	"garble/internal/registry"
)

// DefaultSeed is the master seed used when the caller specifies none.
const DefaultSeed int64 = 151

// Pipeline is immutable after New; Clone is the only way to vary it.
type Pipeline struct {
	configs       []op.Config
	seed          int64
	deterministic bool
	reg           *registry.Registry
	log           *zap.Logger
}

// Option configures construction and cloning.
type Option func(*Pipeline)

// WithSeed pins the master seed.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) {
		p.seed = seed
		p.deterministic = true
	}
}

// Nondeterministic requests fresh, unseeded randomness on every apply.
// The resulting outputs are intentionally irreproducible.
func Nondeterministic() Option {
	return func(p *Pipeline) {
		p.deterministic = false
	}
}

// WithRegistry substitutes the capability table, mainly for tests that
// need synthetic operations.
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Pipeline) {
		p.reg = reg
	}
}

// WithLogger attaches a logger for plan-build and apply debug output.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New builds a pipeline over configs. Configuration problems (unknown
// kinds, bad parameters, unsatisfiable backend preferences) surface
// here, not at apply time.
func New(configs []op.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		configs:       append([]op.Config(nil), configs...),
		seed:          DefaultSeed,
		deterministic: true,
		reg:           BuiltinRegistry(),
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	// Dry-run build: every plan-construction error is a New-time error.
	if _, err := p.buildPlan(); err != nil {
		return nil, err
	}
	return p, nil
}

// Clone returns a pipeline with the same operations in the same order,
// optionally overriding the seed or other construction options.
func (p *Pipeline) Clone(opts ...Option) *Pipeline {
	clone := &Pipeline{
		configs:       p.configs,
		seed:          p.seed,
		deterministic: p.deterministic,
		reg:           p.reg,
		log:           p.log,
	}
	for _, opt := range opts {
		opt(clone)
	}
	return clone
}

// Apply corrupts text. Each call builds a fresh execution plan, so every
// step gets a private random source and concurrent applies of one
// Pipeline are safe.
func (p *Pipeline) Apply(text string) (string, error) {
	plan, err := p.buildPlan()
	if err != nil {
		return "", err
	}
	start := time.Now()
	out, err := plan.Run(text)
	if err != nil {
		return "", err
	}
	p.log.Debug("pipeline applied",
		zap.Int("steps", len(plan.Steps)),
		zap.Bool("deterministic", plan.Deterministic),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// Describe emits one descriptor per operation, in order, with all
// defaults resolved.
func (p *Pipeline) Describe() ([]op.Descriptor, error) {
	plan, err := p.buildPlan()
	if err != nil {
		return nil, err
	}
	return plan.Describe(), nil
}

// Seed reports the master seed; ok is false for non-deterministic
// pipelines.
func (p *Pipeline) Seed() (seed int64, ok bool) {
	return p.seed, p.deterministic
}

// Len reports the number of configured operations.
func (p *Pipeline) Len() int { return len(p.configs) }

func (p *Pipeline) buildPlan() (*engine.Plan, error) {
	var master *uint64
	if p.deterministic {
		m := uint64(p.seed)
		master = &m
	}
	return engine.Build(p.reg, p.configs, master)
}
