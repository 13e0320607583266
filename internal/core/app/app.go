package app

import (
	"interfacer/internal/core/app/helpers"
	"interfacer/internal/core/config"
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/iface"
	"interfacer/internal/engine/parser"
	"interfacer/internal/engine/resolver"
	"interfacer/internal/shared/observability"
	"log/slog"

	"github.com/gobwas/glob"
)

// App wires configuration to the import driver and the output renderers.
type App struct {
	Config *config.Config
	Parser *parser.Parser

	driver *resolver.Driver
	logger *slog.Logger

	includeGlobs []glob.Glob
	excludeGlobs []glob.Glob
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], errors.CodeValidationError, "invalid configuration")
	}

	includeGlobs, err := helpers.CompileGlobs(cfg.Batch.Include, "batch include")
	if err != nil {
		return nil, err
	}
	excludeGlobs, err := helpers.CompileGlobs(cfg.Batch.Exclude, "batch exclude")
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(cfg.Extensions.Source)
	driver := resolver.NewDriver(p, resolver.Options{
		Workers:        cfg.Batch.Workers,
		FailFast:       cfg.Batch.FailFast,
		InterfaceRoots: cfg.Paths.InterfaceRoots,
		Extensions: iface.Extensions{
			Source:    cfg.Extensions.Source,
			Interface: cfg.Extensions.Interface,
		},
		Logger: logger,
	})

	return &App{
		Config:       cfg,
		Parser:       p,
		driver:       driver,
		logger:       observability.ComponentLogger(logger, "app"),
		includeGlobs: includeGlobs,
		excludeGlobs: excludeGlobs,
	}, nil
}
