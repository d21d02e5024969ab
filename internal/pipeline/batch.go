package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coffmap/coffmap/internal/config"
	"github.com/coffmap/coffmap/internal/layout"
	"github.com/coffmap/coffmap/internal/mapfile"
)

// BatchRenderer renders multiple layout snapshots concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each snapshot gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
type BatchRenderer struct {
	// concurrency is the maximum number of concurrent renders.
	concurrency int

	// pageSize is the align figure shown on output-section rows.
	pageSize uint64

	// outputPath derives the destination map file for a snapshot.
	outputPath func(target string) string

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchRenderer.
type BatchOption func(*BatchRenderer)

// WithConcurrency sets the maximum number of concurrent renders.
// Non-positive values are ignored and keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchRenderer) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithPageSize sets the align figure shown on output-section rows.
// A zero value is ignored and keeps the renderer default.
func WithPageSize(n uint64) BatchOption {
	return func(b *BatchRenderer) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// WithOutputPath sets the function that derives each snapshot's
// destination map file path.
func WithOutputPath(f func(target string) string) BatchOption {
	return func(b *BatchRenderer) {
		if f != nil {
			b.outputPath = f
		}
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRenderer) {
		b.logger = logger
	}
}

// NewBatchRenderer creates a BatchRenderer.
// By default it renders config.DefaultJobs snapshots at a time and
// derives output paths with config.MapPathFor.
func NewBatchRenderer(opts ...BatchOption) *BatchRenderer {
	b := &BatchRenderer{
		concurrency: config.DefaultJobs,
		pageSize:    mapfile.DefaultPageSize,
		outputPath:  config.MapPathFor,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// RenderAll renders every snapshot in targets, publishing each map file
// at the derived output path. The first failure cancels renders that
// have not started; map files already published stay in place, since
// each write is individually atomic.
func (b *BatchRenderer) RenderAll(ctx context.Context, targets []string) error {
	b.logger.Info("starting batch render",
		"total_snapshots", len(targets),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			b.logger.Debug("rendering snapshot",
				"snapshot", target,
				"index", i+1,
				"total", len(targets),
			)

			sections, err := layout.LoadSnapshot(target)
			if err != nil {
				return fmt.Errorf("failed to load layout snapshot: %w", err)
			}

			out := b.outputPath(target)
			if err := mapfile.WriteFile(out, sections, mapfile.WithPageSize(b.pageSize)); err != nil {
				return fmt.Errorf("failed to write map file for %s: %w", target, err)
			}

			b.logger.Info("map file written",
				"snapshot", target,
				"output", out,
				"sections", len(sections),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	b.logger.Info("batch render complete",
		"total_snapshots", len(targets),
		"duration", time.Since(startTime),
	)
	return nil
}
