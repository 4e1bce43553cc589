// Package config loads pipeline configuration from YAML.
//
// A config file names the ordered operation sequence, the master seed
// and an optional global backend preference. Loading and validation stay
// out of the engine: by the time a plan is built, the engine only ever
// sees already-validated operation configs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"garble/internal/op"
)

// DefaultSeed matches the library-wide default master seed.
const DefaultSeed int64 = 151

// Config is the root of a garble YAML file.
type Config struct {
	// Seed is the master seed. Nil with Nondeterministic=false means
	// "use DefaultSeed".
	Seed *int64 `yaml:"seed,omitempty"`

	// Nondeterministic requests unseeded random sources. Mutually
	// exclusive with Seed.
	Nondeterministic bool `yaml:"nondeterministic,omitempty"`

	// Prefer optionally forces the global backend policy: "portable"
	// disables accelerated-first resolution.
	Prefer string `yaml:"prefer,omitempty"`

	// Operations is the ordered corruption chain.
	Operations []Operation `yaml:"operations"`
}

// Operation is one chain entry.
type Operation struct {
	Kind    string         `yaml:"kind"`
	Backend string         `yaml:"backend,omitempty"`
	Params  map[string]any `yaml:"params,omitempty"`
}

// DefaultConfig returns a mild character-level corruption chain.
func DefaultConfig() *Config {
	seedValue := DefaultSeed
	return &Config{
		Seed: &seedValue,
		Operations: []Operation{
			{Kind: "typo", Params: map[string]any{"rate": 0.02}},
			{Kind: "homoglyph", Params: map[string]any{"rate": 0.02}},
			{Kind: "zerowidth", Params: map[string]any{"rate": 0.02}},
		},
	}
}

// Load reads and validates a config file, applying env overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads path when it is non-empty, otherwise falls back to
// DefaultConfig. Env overrides apply either way, so GARBLE_SEED pins
// the seed even without a config file.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment pin the master seed without
// editing the file. GARBLE_SEED wins over the file's seed.
func (c *Config) applyEnvOverrides() {
	if raw := os.Getenv("GARBLE_SEED"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.Seed = &parsed
			c.Nondeterministic = false
		}
	}
}

// Validate checks the structural problems a plan build would otherwise
// hit later with less context. Unknown kinds are left to the registry:
// the config layer does not know which operations are compiled in.
func (c *Config) Validate() error {
	if c.Seed != nil && c.Nondeterministic {
		return fmt.Errorf("seed and nondeterministic are mutually exclusive")
	}
	switch c.Prefer {
	case "", string(op.BackendAccelerated), string(op.BackendPortable):
	default:
		return fmt.Errorf("prefer must be %q or %q, got %q", op.BackendAccelerated, op.BackendPortable, c.Prefer)
	}
	if len(c.Operations) == 0 {
		return fmt.Errorf("operations list is empty")
	}
	for i, entry := range c.Operations {
		if entry.Kind == "" {
			return fmt.Errorf("operation %d has no kind", i)
		}
		if entry.Backend != "" && !op.Backend(entry.Backend).Valid() {
			return fmt.Errorf("operation %d (%s): unknown backend %q", i, entry.Kind, entry.Backend)
		}
	}
	return nil
}

// Configs converts the file entries into engine operation configs.
func (c *Config) Configs() []op.Config {
	out := make([]op.Config, 0, len(c.Operations))
	for _, entry := range c.Operations {
		out = append(out, op.Config{
			Kind:    entry.Kind,
			Params:  op.Params(entry.Params),
			Backend: op.Backend(entry.Backend),
		})
	}
	return out
}

// MasterSeed resolves the effective seed. The second return is false in
// non-deterministic mode.
func (c *Config) MasterSeed() (int64, bool) {
	if c.Nondeterministic {
		return 0, false
	}
	if c.Seed != nil {
		return *c.Seed, true
	}
	return DefaultSeed, true
}
