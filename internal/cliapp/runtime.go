package cliapp

import (
	"context"
	"errors"
	"fmt"
	coreapp "interfacer/internal/core/app"
	"interfacer/internal/core/config"
	"interfacer/internal/engine/resolver"
	"interfacer/internal/shared/observability"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const defaultConfigName = config.DefaultConfigFile

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts cliOptions
	root := newRootCommand(&opts, stdout, stderr)
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(stderr, errorStyle.Render("error: ")+exitErr.Err.Error())
			}
			return exitErr.Code
		}
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 2
	}
	return 0
}

func configureLogging(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the explicit config file, or the nearest one above cwd,
// or falls back to defaults. The project root is made absolute against cwd;
// interface roots and the output directory stay relative to whichever root
// the batch ends up using.
func loadConfig(path, cwd string) (*config.Config, error) {
	if path == "" {
		path = config.FindConfigFile(cwd)
	}

	var cfg *config.Config
	if path == "" {
		cfg = config.DefaultConfig()
		config.ApplyEnvOverrides(cfg)
		if errs := config.Validate(cfg); len(errs) > 0 {
			return nil, errs[0]
		}
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	paths, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		return nil, err
	}
	cfg.Paths.ProjectRoot = paths.ProjectRoot
	return cfg, nil
}

// applyCompileOptions lets command line flags override the loaded config.
func applyCompileOptions(opts *cliOptions, cfg *config.Config, cwd string) {
	if opts.root != "" {
		cfg.Paths.ProjectRoot = config.ResolveRelative(cwd, opts.root)
	}
	if len(opts.formats) > 0 {
		cfg.Output.Formats = append([]string(nil), opts.formats...)
	}
	if opts.outDir != "" {
		cfg.Output.Dir = config.ResolveRelative(cwd, opts.outDir)
	}
	if opts.workers > 0 {
		cfg.Batch.Workers = opts.workers
	}
	if opts.failFast {
		cfg.Batch.FailFast = true
	}
	for _, r := range opts.interfaceRoots {
		cfg.Paths.InterfaceRoots = append(cfg.Paths.InterfaceRoots, config.ResolveRelative(cwd, r))
	}
}

func setupTracing(ctx context.Context, cfg *config.Config, logger *slog.Logger) func() {
	if !cfg.Observability.EnableTracing {
		return func() {}
	}
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Endpoint:    cfg.Observability.OTLPEndpoint,
		ServiceName: cfg.Observability.ServiceName,
		Insecure:    cfg.Observability.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		return func() {}
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}
}

func runCompile(cmd *cobra.Command, opts *cliOptions, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := configureLogging(opts.verbose, stderr)

	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	cfg, err := loadConfig(opts.configPath, cwd)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("load config: %w", err)}
	}
	applyCompileOptions(opts, cfg, cwd)

	flush := setupTracing(cmd.Context(), cfg, logger)
	defer flush()

	app, err := coreapp.New(cfg, logger)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{cfg.Paths.ProjectRoot}
	}
	entries, err := app.ExpandEntries(inputs)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if len(entries) == 0 {
		fmt.Fprintln(stderr, warningStyle.Render("no contract files found"))
		return nil
	}

	res, err := app.CompileFiles(cmd.Context(), entries, cfg.Paths.ProjectRoot, nil)
	if res != nil {
		printArtifacts(stdout, res)
		printSummary(stderr, res, err)
	}
	if err != nil {
		if res != nil && res.Batch.Failed() > 0 {
			// Already listed per file by printSummary.
			return &ExitError{Code: 1}
		}
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

func runLocate(cmd *cobra.Command, opts *cliOptions, name string, dirs []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	cfg, err := loadConfig(opts.configPath, cwd)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("load config: %w", err)}
	}

	for i, dir := range dirs {
		dirs[i] = config.ResolveRelative(cwd, dir)
	}
	locator := resolver.Locator{Extensions: []string{cfg.Extensions.Source, cfg.Extensions.Interface}}
	path, err := locator.Locate(dirs, name)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
