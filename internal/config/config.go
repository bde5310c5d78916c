// Package config loads the settings shared by the command-line tool and the
// HTTP server: defaults, then an optional YAML file, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_palindrome/internal/adapters/normalizer"
	"github.com/baditaflorin/go_palindrome/internal/benchmark"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
)

// Config is the root configuration document.
type Config struct {
	Evaluator EvaluatorConfig  `yaml:"evaluator"`
	Benchmark benchmark.Config `yaml:"benchmark"`
	Server    ServerConfig     `yaml:"server"`
	Log       LogConfig        `yaml:"log"`
}

// EvaluatorConfig selects the algorithm and normalization.
type EvaluatorConfig struct {
	Strategy   string `yaml:"strategy" validate:"required"`
	Normalizer string `yaml:"normalizer"`
	// CacheSize enables an LRU verdict cache when positive.
	CacheSize int  `yaml:"cache_size" validate:"gte=0"`
	WarmUp    bool `yaml:"warm_up"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int           `yaml:"port" validate:"gte=1,lte=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gt=0"`
	MaxRequestSize int           `yaml:"max_request_size" validate:"gt=0"`
	// Concurrency of 0 lets fasthttp pick its default.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
	// MaxBenchmarkIterations caps iterations requested over HTTP.
	MaxBenchmarkIterations int `yaml:"max_benchmark_iterations" validate:"gte=1"`
	// MaxTextLength caps the bytes of text accepted per request.
	MaxTextLength int `yaml:"max_text_length" validate:"gte=1"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// File is the log destination; empty means stdout.
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Evaluator: EvaluatorConfig{
			Strategy:   strategy.TwoPointerName,
			Normalizer: normalizer.DefaultNormalizerType.String(),
		},
		Benchmark: benchmark.DefaultConfig(),
		Server: ServerConfig{
			Port:                   8080,
			ReadTimeout:            30 * time.Second,
			WriteTimeout:           30 * time.Second,
			MaxRequestSize:         1024 * 1024,
			MaxBenchmarkIterations: 1_000_000,
			MaxTextLength:          16 * 1024,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field bounds and that names refer to known components.
func (c Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		errs = append(errs, err)
	}
	if _, err := strategy.Lookup(c.Evaluator.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := normalizer.ParseNormalizerType(c.Evaluator.Normalizer); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
