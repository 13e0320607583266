package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"interfacer/internal/core/errors"
	"interfacer/internal/core/ports"
	"interfacer/internal/engine/graph"
	"interfacer/internal/engine/iface"
	"interfacer/internal/engine/namespace"
	"interfacer/internal/engine/parser"
	"interfacer/internal/shared/observability"
	"interfacer/internal/shared/util"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	// Workers bounds how many entry files are resolved at once.
	Workers int
	// FailFast cancels the remaining files after the first failure and makes
	// ResolveImports return that failure.
	FailFast bool
	// InterfaceRoots are the fallback directories for absolute imports.
	InterfaceRoots []string
	Extensions     iface.Extensions
	Logger         *slog.Logger
}

// Binding is one resolved import of an entry file.
type Binding struct {
	Import     parser.Import
	Module     ModulePath
	Path       string // canonical path of the located interface file
	Descriptor *iface.Descriptor
	Self       bool
}

// FileResult is the outcome for one entry file. Namespace is set only when
// every import resolved; Err carries the first failure otherwise.
type FileResult struct {
	Path      string
	Canonical string
	Unit      *iface.Unit
	Namespace *namespace.Table
	Bindings  []Binding
	Err       error
}

// Batch is the outcome of one ResolveImports call. Files follow input order.
type Batch struct {
	ID       uuid.UUID
	Root     string
	Files    []FileResult
	Graph    *graph.ImportGraph
	Cache    iface.CacheStats
	Duration time.Duration
}

// Err joins the errors of every failed file, or returns nil.
func (b *Batch) Err() error {
	var errs []error
	for _, f := range b.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return stderrors.Join(errs...)
}

// Failed counts files whose resolution failed.
func (b *Batch) Failed() int {
	n := 0
	for _, f := range b.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Driver resolves the imports of entry files in batches.
type Driver struct {
	parser  ports.SourceParser
	opts    Options
	locator Locator
	logger  *slog.Logger
}

func NewDriver(p ports.SourceParser, opts Options) *Driver {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Extensions.Source == "" {
		opts.Extensions.Source = DefaultExtensions[0]
	}
	if opts.Extensions.Interface == "" {
		opts.Extensions.Interface = DefaultExtensions[1]
	}
	return &Driver{
		parser:  p,
		opts:    opts,
		locator: Locator{Extensions: []string{opts.Extensions.Source, opts.Extensions.Interface}},
		logger:  observability.ComponentLogger(opts.Logger, "driver"),
	}
}

// ResolveImports resolves every import of every entry under root. One
// resolution cache is shared by the whole batch and dropped afterwards. A
// root of "" or "." means the working directory; a missing root fails the
// batch with MODULE_NOT_FOUND. Per-file failures are reported in the
// returned Batch and do not stop sibling files unless FailFast is set.
func (d *Driver) ResolveImports(ctx context.Context, entries []string, root string) (*Batch, error) {
	ctx, span := observability.Tracer.Start(ctx, "driver.ResolveImports", trace.WithAttributes(
		attribute.Int("entries", len(entries)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	if root == "" || root == "." {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "working directory")
		}
		root = wd
	}
	paths, err := NewPathResolver(root, d.opts.InterfaceRoots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cache := iface.NewCache()
	extractor := iface.NewExtractor(d.parser, cache, d.opts.Extensions, d.opts.Logger)
	batch := &Batch{
		ID:    uuid.New(),
		Root:  paths.Root(),
		Files: make([]FileResult, len(entries)),
		Graph: graph.NewImportGraph(),
	}
	span.SetAttributes(attribute.String("batch_id", batch.ID.String()), attribute.String("root", batch.Root))
	logger := d.logger.With(slog.String("batch_id", batch.ID.String()))
	logger.Info("resolving imports", "entries", len(entries), "root", batch.Root, "workers", d.opts.Workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	sem := make(chan struct{}, d.opts.Workers)

	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				batch.Files[i] = FileResult{Path: entry, Err: ctx.Err()}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				batch.Files[i] = FileResult{Path: entry, Err: err}
				return
			}

			res := d.resolveFile(ctx, entry, paths, extractor, batch.Graph, logger)
			batch.Files[i] = res
			if res.Err != nil && d.opts.FailFast {
				once.Do(func() {
					firstErr = res.Err
					cancel()
				})
			}
		}(i, entry)
	}
	wg.Wait()

	batch.Cache = cache.Stats()
	batch.Duration = time.Since(start)
	logger.Info("import resolution finished",
		"files", len(entries),
		"failed", batch.Failed(),
		"cache_hits", batch.Cache.Hits,
		"cache_misses", batch.Cache.Misses,
		"duration", batch.Duration,
	)

	if firstErr != nil {
		span.RecordError(firstErr)
		span.SetStatus(codes.Error, firstErr.Error())
		return batch, firstErr
	}
	return batch, nil
}

func (d *Driver) resolveFile(ctx context.Context, entry string, paths *PathResolver, extractor *iface.Extractor, g *graph.ImportGraph, logger *slog.Logger) FileResult {
	ctx, span := observability.Tracer.Start(ctx, "driver.resolveFile", trace.WithAttributes(attribute.String("path", entry)))
	defer span.End()

	res := FileResult{Path: entry}
	fail := func(err error) FileResult {
		res.Err = err
		observability.ResolutionFailuresTotal.WithLabelValues(string(errors.CodeOf(err))).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("file failed", "path", entry, "error", err)
		return res
	}

	canonical, err := util.CanonicalPath(entry)
	if err != nil {
		return fail(errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize entry"), errors.CtxFile, entry))
	}
	res.Canonical = canonical

	content, err := os.ReadFile(canonical)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeModuleNotFound
		}
		return fail(errors.AddContext(errors.Wrap(err, code, "read entry file"), errors.CtxFile, entry))
	}
	file, err := d.parser.ParseFile(entry, content)
	if err != nil {
		return fail(errors.AddContext(err, errors.CtxFile, entry))
	}

	unit := iface.NewUnit(canonical, file)
	res.Unit = unit
	if err := unit.Begin(); err != nil {
		return fail(err)
	}
	g.AddFile(canonical, iface.ModuleName(canonical), true)

	table := namespace.New(entry)
	importerDir := filepath.Dir(canonical)
	for _, imp := range file.Imports {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		binding, err := d.resolveImport(ctx, imp, importerDir, paths, extractor, unit)
		if err == nil {
			err = table.Bind(imp.Alias, binding.Path, binding.Descriptor, imp.Location)
		}
		if err != nil {
			return fail(importContext(err, entry, imp))
		}

		res.Bindings = append(res.Bindings, binding)
		g.AddFile(binding.Path, binding.Descriptor.Name(), false)
		g.AddEdge(graph.ImportEdge{
			From:     canonical,
			To:       binding.Path,
			Alias:    imp.Alias,
			Location: imp.Location,
			Self:     binding.Self,
		})
		observability.ImportsResolvedTotal.Inc()
		logger.Debug("import resolved",
			"file", entry,
			"import", imp.Target(),
			"alias", imp.Alias,
			"target", binding.Path,
			"self", binding.Self,
		)
	}

	if _, err := unit.Finish(extractor.Cache()); err != nil {
		return fail(errors.AddContext(err, errors.CtxFile, entry))
	}
	res.Namespace = table
	span.SetAttributes(attribute.Int("imports", len(res.Bindings)))
	return res
}

func (d *Driver) resolveImport(ctx context.Context, imp parser.Import, importerDir string, paths *PathResolver, extractor *iface.Extractor, unit *iface.Unit) (Binding, error) {
	ctx, span := observability.Tracer.Start(ctx, "driver.resolveImport", trace.WithAttributes(
		attribute.String("import", imp.Target()),
		attribute.String("alias", imp.Alias),
	))
	defer span.End()

	mp := FromImport(imp)
	plan, err := paths.Resolve(importerDir, mp)
	if err != nil {
		return Binding{}, err
	}
	located, err := d.locator.Locate(plan.Dirs, plan.Name)
	if err != nil {
		return Binding{}, err
	}
	desc, err := extractor.Extract(ctx, located, unit)
	if err != nil {
		return Binding{}, err
	}

	return Binding{
		Import:     imp,
		Module:     mp,
		Path:       desc.Path(),
		Descriptor: desc,
		Self:       desc.Path() == unit.Path(),
	}, nil
}

// importContext points an error at the import statement that caused it.
func importContext(err error, file string, imp parser.Import) error {
	err = errors.AddContext(err, errors.CtxFile, file)
	err = errors.AddContext(err, errors.CtxLine, imp.Location.Line)
	err = errors.AddContext(err, errors.CtxColumn, imp.Location.Column)
	err = errors.AddContext(err, errors.CtxImport, imp.Target())
	return errors.AddContext(err, errors.CtxAlias, imp.Alias)
}

// Summary renders a one-line description of the batch for logs and CLIs.
func (b *Batch) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d file(s), %d failed, %d descriptor(s) built", len(b.Files), b.Failed(), b.Cache.Entries)
	if b.Cache.Hits > 0 {
		fmt.Fprintf(&sb, ", %d cache hit(s)", b.Cache.Hits)
	}
	return sb.String()
}
