package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coffmap/coffmap/internal/config"
	"github.com/coffmap/coffmap/internal/layout"
	"github.com/coffmap/coffmap/internal/mapfile"
	"github.com/coffmap/coffmap/internal/pipeline"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [layout.yaml ...]",
		Short: "Render map files from layout snapshots",
		Long: `Render produces a linker map file for each given layout snapshot.

The report lists output sections in order, with the input sections placed
in them, the object files that contributed each input section, and the
symbols defined within. Output is written atomically: the destination
either receives the complete report or is left untouched.

With a single snapshot the destination defaults to the snapshot path with
a .map extension; use --output to override it, or --stdout to print the
report instead. With multiple snapshots, one map file is derived per
snapshot and renders run concurrently.

Examples:
  # Render build/kernel.yaml to build/kernel.map
  coffmap render build/kernel.yaml

  # Choose the destination explicitly
  coffmap render -o kernel.map build/kernel.yaml

  # Print the report to stdout
  coffmap render --stdout build/kernel.yaml

  # Render a whole build tree's snapshots, eight at a time
  coffmap render -j 8 build/*.yaml

Configuration file (.coffmap) example:
  map_file: out/kernel.map
  page_size: 4096
  jobs: 8`,
		Args: cobra.ArbitraryArgs,
		RunE: runRenderCmd,
	}

	// Destination flags
	cmd.Flags().StringP("output", "o", "",
		"Destination map file path (single snapshot only)")
	cmd.Flags().Bool("stdout", false,
		"Write the report to standard output instead of a file")

	// Report shape flags
	cmd.Flags().Uint64P("page-size", "p", config.DefaultPageSize,
		"Align figure shown on output-section rows")

	// Batch flags
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of concurrent renders for multiple snapshots")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .coffmap in current, XDG config, or home directory)")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runRender(ctx, cmd, cfg, logger)
}

// runRender renders every target according to cfg.
func runRender(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Stdout {
		for _, target := range cfg.Targets {
			sections, err := layout.LoadSnapshot(target)
			if err != nil {
				return fmt.Errorf("failed to load layout snapshot: %w", err)
			}
			r := mapfile.NewRenderer(cmd.OutOrStdout(), mapfile.WithPageSize(cfg.PageSize))
			if err := r.Render(sections); err != nil {
				return err
			}
		}
		return nil
	}

	outputPath := config.MapPathFor
	if cfg.OutputSet {
		// Validate guarantees a single target in this case. An
		// explicitly empty destination disables map output; the
		// writer treats it as a silent no-op.
		outputPath = func(string) string { return cfg.Output }
		if cfg.Output == "" {
			logger.Debug("map file output disabled by configuration")
		}
	}

	batch := pipeline.NewBatchRenderer(
		pipeline.WithConcurrency(cfg.Jobs),
		pipeline.WithPageSize(cfg.PageSize),
		pipeline.WithOutputPath(outputPath),
		pipeline.WithBatchLogger(logger),
	)
	return batch.RenderAll(ctx, cfg.Targets)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flags set explicitly by the user win over file
// values; file values win over built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Targets = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.OutputSet = cmd.Flags().Changed("output")

	cfg.Stdout, err = cmd.Flags().GetBool("stdout")
	if err != nil {
		return nil, err
	}

	cfg.PageSize, err = cmd.Flags().GetUint64("page-size")
	if err != nil {
		return nil, err
	}

	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from the config file, if one is present.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		applyConfigFile(cmd, cfg, file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// applyConfigFile folds file values into cfg for every setting the user
// did not pin on the command line.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config, file *config.File) {
	if file.MapFile != nil && !cfg.OutputSet && !cfg.Stdout {
		cfg.Output = *file.MapFile
		cfg.OutputSet = true
	}
	if file.PageSize > 0 && !cmd.Flags().Changed("page-size") {
		cfg.PageSize = file.PageSize
	}
	if file.Jobs > 0 && !cmd.Flags().Changed("jobs") {
		cfg.Jobs = file.Jobs
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}
