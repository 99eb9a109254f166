// Package config defines the examgen configuration and its layered loader.
package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/selection"
)

// Config contains process configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	DB        DBConfig        `koanf:"db"`
	LLM       llm.Config      `koanf:"llm"`
	Selection SelectionConfig `koanf:"selection"`
	Metrics   MetricsConfig   `koanf:"metrics"`

	// llmExplicit records whether llm.provider was set by a file or env
	// var rather than defaulted.
	llmExplicit bool
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// DBConfig locates the question bank.
type DBConfig struct {
	// Path is the SQLite file. Empty means the default data directory.
	Path string `koanf:"path"`
}

// SelectionConfig tunes the selection engine and its oracle.
type SelectionConfig struct {
	Scheme        string        `koanf:"scheme"`
	OracleTimeout time.Duration `koanf:"oracle_timeout"`
	ParallelTiers bool          `koanf:"parallel_tiers"`
	MaxTokens     int           `koanf:"max_tokens"`
	Temperature   float64       `koanf:"temperature"`
	Structured    bool          `koanf:"structured"`
	StemLimit     int           `koanf:"stem_limit"`
}

// MetricsConfig controls the Prometheus collectors.
type MetricsConfig struct {
	Namespace string `koanf:"namespace"`

	// Textfile, when set, receives the collected metrics in the node
	// exporter textfile format after each command.
	Textfile string `koanf:"textfile"`
}

// New returns a Config holding the defaults.
func New() *Config {
	engine := selection.DefaultOptions()
	oracle := selection.DefaultOracleConfig()
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		LLM: llm.DefaultConfig(),
		Selection: SelectionConfig{
			Scheme:        engine.Scheme.Name,
			OracleTimeout: engine.OracleTimeout,
			MaxTokens:     oracle.MaxTokens,
			Temperature:   oracle.Temperature,
			StemLimit:     engine.StemLimit,
		},
		Metrics: MetricsConfig{
			Namespace: "examgen",
		},
	}
}

// Validate checks the loaded values. The LLM section is only checked when
// a key is present or a provider was named explicitly; without either the
// engine runs without an oracle.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, c.Log.Format)
	}

	if _, err := selection.LookupScheme(c.Selection.Scheme); err != nil {
		return fmt.Errorf("%w: selection.scheme: %v", ErrInvalidConfig, err)
	}
	if c.Selection.OracleTimeout < 0 {
		return fmt.Errorf("%w: selection.oracle_timeout must not be negative", ErrInvalidConfig)
	}
	if c.Selection.MaxTokens <= 0 {
		return fmt.Errorf("%w: selection.max_tokens must be positive", ErrInvalidConfig)
	}
	if c.Selection.Temperature < 0 || c.Selection.Temperature > 1 {
		return fmt.Errorf("%w: selection.temperature must be within 0..1", ErrInvalidConfig)
	}
	if c.Selection.StemLimit < 0 {
		return fmt.Errorf("%w: selection.stem_limit must not be negative", ErrInvalidConfig)
	}

	if c.llmExplicit || c.LLM.HasKey() {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// OracleEnabled reports whether an LLM provider can be built.
func (c *Config) OracleEnabled() bool {
	return c.LLM.HasKey()
}

// EngineOptions converts the selection section into engine options.
// Logger and Recorder are left for the caller.
func (c *Config) EngineOptions() (selection.Options, error) {
	scheme, err := selection.LookupScheme(c.Selection.Scheme)
	if err != nil {
		return selection.Options{}, err
	}
	return selection.Options{
		Scheme:        scheme,
		OracleTimeout: c.Selection.OracleTimeout,
		ParallelTiers: c.Selection.ParallelTiers,
		StemLimit:     c.Selection.StemLimit,
	}, nil
}

// OracleConfig converts the selection section into oracle settings.
func (c *Config) OracleConfig() selection.OracleConfig {
	return selection.OracleConfig{
		MaxTokens:   c.Selection.MaxTokens,
		Temperature: c.Selection.Temperature,
		Structured:  c.Selection.Structured,
	}
}
