package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/examgen/internal/llm"
)

const envPrefix = "EXAMGEN_"

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New), seeded with the first vendor API key found in the
//     environment (llm.DiscoverConfig)
//  2. the YAML file at path, or at EXAMGEN_CONFIG when path is empty
//  3. env vars with the EXAMGEN_ prefix; "__" separates sections, so
//     EXAMGEN_SELECTION__SCHEME sets selection.scheme
func Load(path string) (*Config, error) {
	cfg := New()
	if discovered, ok := llm.DiscoverConfig(); ok {
		cfg.LLM = discovered
	}

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	cfg.llmExplicit = k.Exists("llm.provider")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps EXAMGEN_LLM__ANTHROPIC__API_KEY to llm.anthropic.api_key.
// EXAMGEN_CONFIG and EXAMGEN_DB are read directly and skipped here.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "config" || key == "db" {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
