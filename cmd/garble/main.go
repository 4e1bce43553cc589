package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"garble/internal/config"
	"garble/internal/ops"
	"garble/internal/registry"
	"garble/pkg/pipeline"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "garble",
	Short: "garble - deterministic, composable text corruption",
	Long: `garble runs ordered chains of text-corruption operations.

Every chain is seeded: the same seed, operations and input always
produce byte-identical output, regardless of which backend executes
each operation. Use it to stress-test parsers, search indexes and
NLP pipelines with realistic noisy text.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Pipeline config file (YAML, default: built-in chain)")

	rootCmd.AddCommand(corruptCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildPipeline assembles a pipeline from the resolved config plus any
// command-line seed overrides.
func buildPipeline(cfg *config.Config, seedOverride *int64, nondeterministic bool) (*pipeline.Pipeline, error) {
	opts := []pipeline.Option{pipeline.WithLogger(logger)}

	switch {
	case nondeterministic:
		opts = append(opts, pipeline.Nondeterministic())
	case seedOverride != nil:
		opts = append(opts, pipeline.WithSeed(*seedOverride))
	case cfg.Nondeterministic:
		opts = append(opts, pipeline.Nondeterministic())
	default:
		seed, _ := cfg.MasterSeed()
		opts = append(opts, pipeline.WithSeed(seed))
	}

	if cfg.Prefer == string(pipeline.BackendPortable) {
		reg := registry.New()
		ops.MustRegister(reg)
		reg.PreferPortable(true)
		opts = append(opts, pipeline.WithRegistry(reg))
	}

	return pipeline.New(cfg.Configs(), opts...)
}
