package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: INTERFACER_[SECTION]_[KEY] (e.g., INTERFACER_BATCH_WORKERS).
func ApplyEnvOverrides(cfg *Config) {
	// Paths
	setEnvString(&cfg.Paths.ProjectRoot, "INTERFACER_PATHS_PROJECT_ROOT")
	setEnvList(&cfg.Paths.InterfaceRoots, "INTERFACER_PATHS_INTERFACE_ROOTS")

	// Extensions
	setEnvString(&cfg.Extensions.Source, "INTERFACER_EXTENSIONS_SOURCE")
	setEnvString(&cfg.Extensions.Interface, "INTERFACER_EXTENSIONS_INTERFACE")

	// Batch
	setEnvInt(&cfg.Batch.Workers, "INTERFACER_BATCH_WORKERS")
	setEnvBool(&cfg.Batch.FailFast, "INTERFACER_BATCH_FAIL_FAST")

	// Output
	setEnvList(&cfg.Output.Formats, "INTERFACER_OUTPUT_FORMATS")
	setEnvString(&cfg.Output.Dir, "INTERFACER_OUTPUT_DIR")

	// Observability
	setEnvBool(&cfg.Observability.EnableTracing, "INTERFACER_OBSERVABILITY_ENABLE_TRACING")
	setEnvString(&cfg.Observability.OTLPEndpoint, "INTERFACER_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.OTLPInsecure, "INTERFACER_OBSERVABILITY_OTLP_INSECURE")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

// setEnvList splits a comma-separated value, dropping empty items.
func setEnvList(target *[]string, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	slog.Debug("applying env override", "key", key, "value", val)
	*target = out
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}
