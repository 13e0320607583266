package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"interfacer/internal/core/config/helpers"
)

// KnownFormats lists the output formats the compile step can render.
var KnownFormats = []string{"abi", "interface", "imports", "dot", "mermaid"}

// Validate returns every problem found in cfg, in a stable order.
func Validate(cfg *Config) []error {
	var errs []error
	for _, check := range []func(*Config) error{
		validateVersion,
		validateExtensions,
		validateInterfaceRoots,
		validateBatch,
		validateOutput,
		validateObservability,
	} {
		if err := check(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateExtensions(cfg *Config) error {
	src := strings.ToLower(strings.TrimSpace(cfg.Extensions.Source))
	iface := strings.ToLower(strings.TrimSpace(cfg.Extensions.Interface))
	for _, entry := range [][2]string{{"extensions.source", src}, {"extensions.interface", iface}} {
		key, ext := entry[0], entry[1]
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%s must look like \".ext\", got %q", key, ext)
		}
	}
	if src == iface {
		return fmt.Errorf("extensions.source and extensions.interface must differ, both are %q", src)
	}
	return nil
}

func validateInterfaceRoots(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Paths.InterfaceRoots))
	for i, root := range cfg.Paths.InterfaceRoots {
		clean := filepath.Clean(strings.TrimSpace(root))
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("paths.interface_roots[%d] must not be empty", i)
		}
		if helpers.HasWildcard(root) {
			return fmt.Errorf("paths.interface_roots[%d] %q must be a directory, not a pattern", i, root)
		}
		if seen[clean] {
			return fmt.Errorf("duplicate paths.interface_roots entry %q", root)
		}
		seen[clean] = true
	}
	return nil
}

func validateBatch(cfg *Config) error {
	if cfg.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be >= 1, got %d", cfg.Batch.Workers)
	}
	for i, pattern := range append(append([]string(nil), cfg.Batch.Include...), cfg.Batch.Exclude...) {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("batch pattern %d must not be empty", i)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	for i, format := range cfg.Output.Formats {
		if !IsKnownFormat(format) {
			return fmt.Errorf("output.formats[%d] %q is not one of: %s", i, format, strings.Join(KnownFormats, ", "))
		}
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.EnableTracing && strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		return fmt.Errorf("observability.otlp_endpoint must be set when enable_tracing=true")
	}
	return nil
}

// IsKnownFormat reports whether format names a renderer, ignoring case.
func IsKnownFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, known := range KnownFormats {
		if format == known {
			return true
		}
	}
	return false
}
