// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers a YAML file and ARCADE_* environment variables on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"

	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of goroutines used for phase-one scoring.
	WorkerCount int `koanf:"worker_count"`

	// FailurePolicy is the default for batches that do not name one.
	FailurePolicy types.FailurePolicy `koanf:"failure_policy"`

	// TopN is the default leaderboard length; MaxTopN caps requested lengths.
	TopN    int `koanf:"top_n"`
	MaxTopN int `koanf:"max_top_n"`

	// HistogramBuckets is the number of bins in the points distribution.
	HistogramBuckets int `koanf:"histogram_buckets"`

	// MaxBatchSize caps the records accepted by POST /v1/evaluate.
	MaxBatchSize int `koanf:"max_batch_size"`

	// Rules is the scoring rule set.
	Rules scoring.Rules `koanf:"rules"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		WorkerCount:      runtime.NumCPU(),
		FailurePolicy:    types.PolicyFail,
		TopN:             15,
		MaxTopN:          500,
		HistogramBuckets: 20,
		MaxBatchSize:     100_000,
		Rules:            scoring.DefaultRules(),
	}
}
