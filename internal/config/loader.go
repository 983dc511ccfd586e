package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "ARCADE_"
	envFileVar = "ARCADE_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if ARCADE_CONFIG is set
//  3. env (prefix ARCADE_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(envFileVar))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ARCADE_TOP_N -> top_n, ARCADE_RULES__LEVEL__UNSTARTED_XP_TO_NEXT ->
	// rules.level.unstarted_xp_to_next. Single underscores are kept so keys
	// match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	k.Delete("config")

	cfg := *base
	resetOverriddenLists(k, &cfg)
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resetOverriddenLists clears default lists the file replaces. Decoding into
// a non-empty slice merges element by element, so a shorter list from the
// file would otherwise keep the trailing defaults.
func resetOverriddenLists(k *koanf.Koanf, cfg *Config) {
	if k.Exists("rules.milestones") {
		cfg.Rules.Milestones = nil
	}
	if k.Exists("rules.rank_tiers") {
		cfg.Rules.RankTiers = nil
	}
	if k.Exists("rules.combo.tiers") {
		cfg.Rules.Combo.Tiers = nil
	}
	if k.Exists("rules.achievements") {
		cfg.Rules.Achievements = nil
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case !c.FailurePolicy.Valid():
		return fmt.Errorf("%w: failure_policy must be fail or skip, got %q", ErrInvalidConfig, c.FailurePolicy)
	case c.TopN < 1:
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, c.TopN)
	case c.MaxTopN < c.TopN:
		return fmt.Errorf("%w: max_top_n (%d) is below top_n (%d)", ErrInvalidConfig, c.MaxTopN, c.TopN)
	case c.HistogramBuckets < 1:
		return fmt.Errorf("%w: histogram_buckets must be positive, got %d", ErrInvalidConfig, c.HistogramBuckets)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
