package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/metrics"
	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/store"
)

// buildEngine wires a selection engine to the open store. The LLM oracle
// is attached only when a provider key is configured; without it every
// pick is random.
func buildEngine(ctx context.Context, s *store.Store, schemeName string) (*selection.Engine, *metrics.Manager, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, nil, err
	}
	if schemeName != "" {
		if opts.Scheme, err = selection.LookupScheme(schemeName); err != nil {
			return nil, nil, err
		}
	}

	m := metrics.NewManager(metrics.WithNamespace(cfg.Metrics.Namespace))
	opts.Logger = logger
	opts.Recorder = m

	var oracle selection.Oracle
	if cfg.OracleEnabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, s.EventRepo(), logger)
		if err != nil {
			logger.Warn("LLM provider unavailable, selection will be random", zap.Error(err))
		} else {
			oracle = selection.NewLLMOracle(provider, cfg.OracleConfig())
		}
	} else {
		logger.Info("no LLM provider configured, selection will be random")
	}

	e, err := selection.NewEngine(selection.NewStoreRepository(s.QuestionRepo()), oracle, opts)
	if err != nil {
		return nil, nil, err
	}
	return e, m, nil
}

// flushMetrics writes the collected metrics when a textfile path is set
// by --metrics-out or metrics.textfile.
func flushMetrics(cmd *cobra.Command, m *metrics.Manager) {
	path, _ := cmd.Flags().GetString("metrics-out")
	if path == "" {
		path = cfg.Metrics.Textfile
	}
	if path == "" || m == nil {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
