package app

import (
	"context"
	"interfacer/internal/core/app/helpers"
	"interfacer/internal/core/config"
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/resolver"
	"interfacer/internal/output"
	"interfacer/internal/shared/observability"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Artifact is one rendered output. Entry is empty for batch-wide formats.
type Artifact struct {
	Entry   string
	Format  string
	Content string
	// Path is where the artifact was written, empty when no output
	// directory is configured.
	Path string

	source string // canonical path of the compiled file
}

type Result struct {
	Batch     *resolver.Batch
	Artifacts []Artifact
	Cycles    [][]string
}

// Artifact returns the first artifact for entry and format.
func (r *Result) Artifact(entry, format string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Entry == entry && a.Format == format {
			return a, true
		}
	}
	return Artifact{}, false
}

// CompileFiles resolves the imports of every entry under root and renders the
// requested formats. Nil formats fall back to the configured ones. When any
// import fails to resolve, the joined per-file errors are returned together
// with the partial result; artifacts are still produced for the files that
// resolved.
func (a *App) CompileFiles(ctx context.Context, entries []string, root string, formats []string) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.CompileFiles", trace.WithAttributes(
		attribute.Int("entries", len(entries)),
		attribute.StringSlice("formats", formats),
	))
	defer span.End()

	if formats == nil {
		formats = a.Config.Output.Formats
	}
	normalized, err := normalizeFormats(formats)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if strings.TrimSpace(root) == "" {
		root = a.Config.Paths.ProjectRoot
	}

	batch, err := a.driver.ResolveImports(ctx, entries, root)
	if batch == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.AddContext(err, errors.CtxOperation, "resolve_imports")
	}

	res := &Result{Batch: batch, Cycles: batch.Graph.DetectCycles()}
	if renderErr := a.render(res, normalized); renderErr != nil {
		span.RecordError(renderErr)
		span.SetStatus(codes.Error, renderErr.Error())
		return res, renderErr
	}
	if err == nil {
		err = batch.Err()
	}

	a.logger.Info("compile finished",
		"batch_id", batch.ID.String(),
		"summary", batch.Summary(),
		"artifacts", len(res.Artifacts),
		"cycles", len(res.Cycles),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	return res, nil
}

func normalizeFormats(formats []string) ([]string, error) {
	out := make([]string, 0, len(formats))
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if !config.IsKnownFormat(f) {
			return nil, errors.AddContext(
				errors.Newf(errors.CodeValidationError, "unknown output format %q (known: %s)", f, strings.Join(config.KnownFormats, ", ")),
				errors.CtxOperation, "compile_files",
			)
		}
		f = strings.ToLower(strings.TrimSpace(f))
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (a *App) render(res *Result, formats []string) error {
	batch := res.Batch
	outDir := ""
	if dir := strings.TrimSpace(a.Config.Output.Dir); dir != "" {
		outDir = helpers.ResolveOutputPath(dir, batch.Root)
	}

	for _, format := range formats {
		switch format {
		case "abi", "interface":
			for _, f := range batch.Files {
				if f.Err != nil || f.Unit == nil || f.Unit.Descriptor() == nil {
					continue
				}
				content, err := renderDescriptor(format, f)
				if err != nil {
					return err
				}
				res.Artifacts = append(res.Artifacts, Artifact{Entry: f.Path, Format: format, Content: content, source: f.Canonical})
			}
		case "imports":
			content, err := output.NewTSVGenerator(batch.Graph, batch.Root).Generate()
			if err != nil {
				return err
			}
			res.Artifacts = append(res.Artifacts, Artifact{Format: format, Content: content})
		case "dot":
			content, err := output.NewDOTGenerator(batch.Graph, batch.Root).Generate(res.Cycles)
			if err != nil {
				return err
			}
			res.Artifacts = append(res.Artifacts, Artifact{Format: format, Content: content})
		case "mermaid":
			content, err := output.NewMermaidGenerator(batch.Graph, batch.Root).Generate(res.Cycles)
			if err != nil {
				return err
			}
			res.Artifacts = append(res.Artifacts, Artifact{Format: format, Content: content})
		}
	}

	if outDir == "" {
		return nil
	}
	for i := range res.Artifacts {
		art := &res.Artifacts[i]
		path := artifactPath(outDir, batch.Root, *art)
		if err := helpers.WriteArtifact(path, art.Content); err != nil {
			return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write artifact"), errors.CtxPath, path)
		}
		art.Path = path
		a.logger.Debug("artifact written", "format", art.Format, "path", path)
	}
	return nil
}

func renderDescriptor(format string, f resolver.FileResult) (string, error) {
	desc := f.Unit.Descriptor()
	if format == "abi" {
		return output.GenerateABI(desc)
	}
	return output.GenerateInterface(desc)
}
