package service

import (
	"github.com/okian/arcadeboard/internal/config"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of goroutines used for phase-one scoring.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRules replaces the default rule set. Rules are validated by Start.
func WithRules(rules scoring.Rules) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithFailurePolicy sets the policy used when a request names none.
func WithFailurePolicy(policy types.FailurePolicy) Option {
	return func(s *Service) {
		if policy.Valid() {
			s.policy = policy
		}
	}
}

// WithTopN sets the default leaderboard length.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMaxTopN caps requested leaderboard lengths.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// WithHistogramBuckets sets the number of bins in the points distribution.
func WithHistogramBuckets(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.histogramBuckets = n
		}
	}
}

// WithConfig applies the scoring and batch settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		for _, opt := range []Option{
			WithWorkerCount(cfg.WorkerCount),
			WithRules(cfg.Rules),
			WithFailurePolicy(cfg.FailurePolicy),
			WithTopN(cfg.TopN),
			WithMaxTopN(cfg.MaxTopN),
			WithHistogramBuckets(cfg.HistogramBuckets),
		} {
			opt(s)
		}
	}
}
