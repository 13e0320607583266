package iface

import (
	"context"
	"interfacer/internal/core/errors"
	"interfacer/internal/core/ports"
	"interfacer/internal/shared/observability"
	"interfacer/internal/shared/util"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Extensions names the two interchangeable interface source formats.
type Extensions struct {
	Source    string
	Interface string
}

// Extractor derives descriptors from located files. It never resolves the
// imports of the files it reads, so any compilable contract can serve as an
// interface whatever it imports itself.
type Extractor struct {
	parser ports.SourceParser
	cache  *Cache
	ext    Extensions
	logger *slog.Logger
}

func NewExtractor(p ports.SourceParser, cache *Cache, ext Extensions, logger *slog.Logger) *Extractor {
	return &Extractor{
		parser: p,
		cache:  cache,
		ext:    Extensions{Source: strings.ToLower(ext.Source), Interface: strings.ToLower(ext.Interface)},
		logger: observability.ComponentLogger(logger, "extractor"),
	}
}

func (e *Extractor) Cache() *Cache { return e.cache }

// Extract returns the descriptor of the file at path. When path is the file
// of unit, the unit's parsed tree is used and nothing is read from disk.
func (e *Extractor) Extract(ctx context.Context, path string, unit *Unit) (*Descriptor, error) {
	ctx, span := observability.Tracer.Start(ctx, "extractor.Extract", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	canonical, err := util.CanonicalPath(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize interface path"), errors.CtxPath, path)
	}

	if unit != nil && canonical == unit.Path() {
		span.SetAttributes(attribute.Bool("self_import", true))
		observability.SelfImportsTotal.Inc()
		e.logger.Debug("self import answered from unit", "path", canonical, "state", unit.State().String())
		return unit.signatures(e.cache)
	}

	desc, err := e.cache.Get(canonical, func() (*Descriptor, error) {
		return e.load(ctx, canonical)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return desc, nil
}

func (e *Extractor) load(ctx context.Context, path string) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeModuleNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read interface file"), errors.CtxPath, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case e.ext.Interface:
		desc, err := DecodeABI(path, data)
		observability.ExtractionDuration.WithLabelValues(string(KindABI)).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		e.logger.Debug("interface decoded", "path", path, "functions", desc.Len())
		return desc, nil

	case e.ext.Source:
		file, err := e.parser.ParseFile(path, data)
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxPath, path)
		}
		if file.HasErrors {
			e.logger.Debug("interface source has syntax errors, extracting what parsed", "path", path)
		}
		desc := FromFile(path, file)
		observability.ExtractionDuration.WithLabelValues(string(KindSource)).Observe(time.Since(start).Seconds())
		e.logger.Debug("interface derived from source", "path", path, "functions", desc.Len(), "ignored_imports", len(file.Imports))
		return desc, nil

	default:
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "not an interface file"), errors.CtxPath, path)
	}
}
