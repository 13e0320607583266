package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigFile         = "interfacer.toml"
	DefaultSourceExtension    = ".vy"
	DefaultInterfaceExtension = ".json"
	DefaultInterfaceRoot      = "interfaces"
)

type Config struct {
	Version       int           `toml:"version"`
	Paths         Paths         `toml:"paths"`
	Extensions    Extensions    `toml:"extensions"`
	Batch         Batch         `toml:"batch"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
}

type Paths struct {
	// ProjectRoot bounds every relative import. Empty or "." means the
	// working directory.
	ProjectRoot string `toml:"project_root"`
	// InterfaceRoots are fallback search directories for absolute imports,
	// relative to ProjectRoot unless absolute. Order is search order.
	InterfaceRoots []string `toml:"interface_roots"`
}

type Extensions struct {
	Source    string `toml:"source"`
	Interface string `toml:"interface"`
}

type Batch struct {
	Workers  int      `toml:"workers"`
	FailFast bool     `toml:"fail_fast"`
	Include  []string `toml:"include"`
	Exclude  []string `toml:"exclude"`
}

type Output struct {
	Formats []string `toml:"formats"`
	Dir     string   `toml:"dir"`
}

type Observability struct {
	EnableTracing bool   `toml:"enable_tracing"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	OTLPInsecure  bool   `toml:"otlp_insecure"`
	ServiceName   string `toml:"service_name"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyDefaults(&cfg)
	ApplyEnvOverrides(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errs[0]
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Paths.ProjectRoot) == "" {
		cfg.Paths.ProjectRoot = "."
	}
	if cfg.Paths.InterfaceRoots == nil {
		cfg.Paths.InterfaceRoots = []string{DefaultInterfaceRoot}
	}

	if strings.TrimSpace(cfg.Extensions.Source) == "" {
		cfg.Extensions.Source = DefaultSourceExtension
	}
	if strings.TrimSpace(cfg.Extensions.Interface) == "" {
		cfg.Extensions.Interface = DefaultInterfaceExtension
	}

	if cfg.Batch.Workers <= 0 {
		cfg.Batch.Workers = 1
	}

	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"abi"}
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "interfacer"
	}
}
