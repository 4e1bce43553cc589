package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"garble/internal/config"
)

// describeCmd prints the resolved plan without running it
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the resolved operation chain as YAML",
	Long: `Resolves the configured chain against the operation registry and
prints one descriptor per step: kind, version, the backend that would
execute it, and the fully-defaulted parameters.

The descriptors are backend-independent apart from the backend field
itself, so two hosts with different backend availability can diff
their describe output to confirm they run the same chain.`,
	RunE: runDescribe,
}

type planDescription struct {
	Seed          *int64 `yaml:"seed,omitempty"`
	Deterministic bool   `yaml:"deterministic"`
	Steps         []any  `yaml:"steps"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg, nil, false)
	if err != nil {
		return err
	}
	descriptors, err := p.Describe()
	if err != nil {
		return err
	}

	desc := planDescription{Steps: make([]any, 0, len(descriptors))}
	if seed, ok := p.Seed(); ok {
		desc.Seed = &seed
		desc.Deterministic = true
	}
	for _, d := range descriptors {
		desc.Steps = append(desc.Steps, d)
	}

	out, err := yaml.Marshal(desc)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
