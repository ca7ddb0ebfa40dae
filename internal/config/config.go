// Package config holds the service configuration: HTTP server settings,
// alignment parameters and the feature flags handed to the HTTP layer.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_verse_similarity/internal/core/alignment"
)

// Default server configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
)

// Environment variables overriding the feature flags.
const (
	EnvUseExternalASR      = "USE_WHISPER"
	EnvApplyDiacritization = "ADD_TAJWEED"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Engine   EngineConfig `yaml:"engine"`
	Features FeatureFlags `yaml:"features"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxRequestSize int           `yaml:"max_request_size"`
	Concurrency    int           `yaml:"concurrency"`
	WarmUp         bool          `yaml:"warm_up"`
	LogFile        string        `yaml:"log_file"`
	// BatchWorkers bounds concurrent comparisons within one batch request.
	BatchWorkers int `yaml:"batch_workers"`
}

// EngineConfig holds the alignment parameters.
type EngineConfig struct {
	Threshold float64 `yaml:"threshold"`
	Window    int     `yaml:"window"`
}

// FeatureFlags are the upstream collaborator toggles. The comparison engine
// never reads them; they are reported to clients by the HTTP layer.
type FeatureFlags struct {
	UseExternalASR      bool `yaml:"use_external_asr" json:"use_external_asr"`
	ApplyDiacritization bool `yaml:"apply_diacritization" json:"apply_diacritization"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	engine := alignment.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			MaxRequestSize: DefaultMaxRequestSize,
			Concurrency:    DefaultConcurrency,
			WarmUp:         true,
			BatchWorkers:   runtime.GOMAXPROCS(0),
		},
		Engine: EngineConfig{
			Threshold: engine.Threshold,
			Window:    engine.Window,
		},
		Features: FeatureFlags{
			UseExternalASR:      false,
			ApplyDiacritization: true,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of the defaults and validates
// the result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides the feature flags from the environment. lookup is
// usually os.LookupEnv. Values other than "true"/"false" are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := parseBool(lookup, EnvUseExternalASR); ok {
		c.Features.UseExternalASR = v
	}
	if v, ok := parseBool(lookup, EnvApplyDiacritization); ok {
		c.Features.ApplyDiacritization = v
	}
}

func parseBool(lookup func(string) (string, bool), key string) (bool, bool) {
	raw, ok := lookup(key)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range [1, 65535]", cfg.Server.Port))
	}
	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout %s must not be negative", cfg.Server.ReadTimeout))
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout %s must not be negative", cfg.Server.WriteTimeout))
	}
	if cfg.Server.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_request_size %d must be positive", cfg.Server.MaxRequestSize))
	}
	if cfg.Server.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("server.concurrency %d must not be negative", cfg.Server.Concurrency))
	}
	if cfg.Server.BatchWorkers < 0 {
		errs = append(errs, fmt.Errorf("server.batch_workers %d must not be negative", cfg.Server.BatchWorkers))
	}

	engine := alignment.Config{Threshold: cfg.Engine.Threshold, Window: cfg.Engine.Window}
	if err := engine.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}

	return errors.Join(errs...)
}
