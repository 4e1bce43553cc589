package config

import (
	"os"
	"path/filepath"
	"testing"

	"garble/internal/op"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "garble.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GARBLE_SEED", "")
	path := writeConfig(t, `
seed: 404
prefer: portable
operations:
  - kind: typo
    backend: accelerated
    params:
      rate: 0.05
  - kind: redact
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	seedValue, ok := cfg.MasterSeed()
	if !ok || seedValue != 404 {
		t.Errorf("expected seed 404, got %d (ok=%v)", seedValue, ok)
	}
	if cfg.Prefer != "portable" {
		t.Errorf("expected prefer=portable, got %s", cfg.Prefer)
	}

	configs := cfg.Configs()
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].Backend != op.BackendAccelerated {
		t.Errorf("expected accelerated backend, got %q", configs[0].Backend)
	}
	if rate, ok := configs[0].Params["rate"].(float64); !ok || rate != 0.05 {
		t.Errorf("expected rate=0.05, got %v", configs[0].Params["rate"])
	}
	if configs[1].Params != nil {
		t.Errorf("expected nil params for bare entry, got %v", configs[1].Params)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultSeedWhenUnset(t *testing.T) {
	t.Setenv("GARBLE_SEED", "")
	path := writeConfig(t, `
operations:
  - kind: typo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	seedValue, ok := cfg.MasterSeed()
	if !ok || seedValue != DefaultSeed {
		t.Errorf("expected default seed %d, got %d (ok=%v)", DefaultSeed, seedValue, ok)
	}
}

func TestNondeterministicMode(t *testing.T) {
	t.Setenv("GARBLE_SEED", "")
	path := writeConfig(t, `
nondeterministic: true
operations:
  - kind: typo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := cfg.MasterSeed(); ok {
		t.Error("expected no master seed in nondeterministic mode")
	}
}

func TestEnvOverridesSeed(t *testing.T) {
	t.Setenv("GARBLE_SEED", "9999")
	path := writeConfig(t, `
seed: 404
operations:
  - kind: typo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	seedValue, ok := cfg.MasterSeed()
	if !ok || seedValue != 9999 {
		t.Errorf("expected env override seed 9999, got %d (ok=%v)", seedValue, ok)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]string{
		"seed with nondeterministic": `
seed: 1
nondeterministic: true
operations:
  - kind: typo
`,
		"bad prefer": `
prefer: gpu
operations:
  - kind: typo
`,
		"empty operations": `
seed: 1
operations: []
`,
		"missing kind": `
operations:
  - params:
      rate: 0.1
`,
		"bad backend": `
operations:
  - kind: typo
    backend: quantum
`,
	}
	t.Setenv("GARBLE_SEED", "")
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("GARBLE_SEED", "")
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Operations) != len(cfg.Operations) {
		t.Fatalf("expected %d operations, got %d", len(cfg.Operations), len(loaded.Operations))
	}
	seedValue, ok := loaded.MasterSeed()
	if !ok || seedValue != DefaultSeed {
		t.Errorf("round trip lost the seed: %d (ok=%v)", seedValue, ok)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	t.Setenv("GARBLE_SEED", "")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(cfg.Operations) == 0 {
		t.Fatal("default config has no operations")
	}
	seed, ok := cfg.MasterSeed()
	if !ok || seed != DefaultSeed {
		t.Errorf("expected default seed %d, got %d (ok=%v)", DefaultSeed, seed, ok)
	}
}

func TestResolveEnvOverrideWithoutFile(t *testing.T) {
	t.Setenv("GARBLE_SEED", "4242")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	seed, ok := cfg.MasterSeed()
	if !ok || seed != 4242 {
		t.Errorf("expected env seed 4242, got %d (ok=%v)", seed, ok)
	}
}
