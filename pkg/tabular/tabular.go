// Package tabular adapts a corruption pipeline to column-shaped data.
//
// It is a host-integration boundary: it drives the engine purely through
// the pipeline surface, never through engine internals. Each row gets
// its own derived seed so that corrupting a column is reproducible yet
// no two rows share randomness, and inserting a row only reseeds the
// rows after it, not the whole column.
package tabular

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"garble/internal/seed"
	"garble/pkg/pipeline"
)

const defaultWorkers = 4

// Option adjusts a Corrupt call.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers caps the number of rows processed concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Corrupt applies p to every row, preserving order. Rows are processed
// concurrently; each row uses a clone of p seeded from the pipeline's
// master seed and the row position. A failing row aborts the batch with
// its row index attached.
func Corrupt(ctx context.Context, p *pipeline.Pipeline, rows []string, opts ...Option) ([]string, error) {
	o := options{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]string, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	master, deterministic := p.Seed()
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowPipe := p
			if deterministic {
				rowSeed := seed.Derive(uint64(master), "tabular.row", "1", i)
				rowPipe = p.Clone(pipeline.WithSeed(int64(rowSeed)))
			}
			corrupted, err := rowPipe.Apply(row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = corrupted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
