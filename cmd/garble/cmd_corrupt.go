package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"garble/internal/config"
	"garble/pkg/tabular"
)

var (
	corruptSeed   int64
	corruptNondet bool
	corruptFile   string
	corruptJobs   int
)

// corruptCmd applies the configured chain to text
var corruptCmd = &cobra.Command{
	Use:   "corrupt [text...]",
	Short: "Corrupt text through the configured operation chain",
	Long: `Applies the configured corruption chain to its input.

Input sources, in order of precedence:
  1. Positional arguments, joined with spaces
  2. --file, processed line by line
  3. Standard input, processed line by line

Line-oriented input is corrupted in parallel; each line gets its own
seed derived from the master seed and the line position, so output is
reproducible no matter how many workers run.

Examples:
  garble corrupt "the quick brown fox"
  garble corrupt --seed 9000 "the quick brown fox"
  cat corpus.txt | garble corrupt --jobs 8 > corrupted.txt`,
	RunE: runCorrupt,
}

func init() {
	corruptCmd.Flags().Int64Var(&corruptSeed, "seed", 0, "Master seed (overrides config)")
	corruptCmd.Flags().BoolVar(&corruptNondet, "nondeterministic", false, "Use fresh entropy instead of a seed")
	corruptCmd.Flags().StringVarP(&corruptFile, "file", "f", "", "Read input lines from a file")
	corruptCmd.Flags().IntVarP(&corruptJobs, "jobs", "j", 4, "Parallel workers for line input")
}

func runCorrupt(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	var seedOverride *int64
	if cmd.Flags().Changed("seed") {
		seedOverride = &corruptSeed
	}
	p, err := buildPipeline(cfg, seedOverride, corruptNondet)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	log.Debug("Pipeline built",
		zap.Int("steps", p.Len()),
		zap.Bool("deterministic", func() bool { _, ok := p.Seed(); return ok }()))

	// Direct text argument: single apply, no worker pool.
	if len(args) > 0 {
		out, err := p.Apply(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	var in io.Reader = cmd.InOrStdin()
	if corruptFile != "" {
		f, err := os.Open(corruptFile)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	lines, err := readLines(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	start := time.Now()
	out, err := tabular.Corrupt(ctx, p, lines, tabular.WithWorkers(corruptJobs))
	if err != nil {
		return err
	}
	log.Info("Corrupted input",
		zap.Int("lines", len(out)),
		zap.Duration("elapsed", time.Since(start)))

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, line := range out {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
