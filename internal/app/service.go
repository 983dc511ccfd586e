// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/okian/arcadeboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultTopN             = 15
	defaultMaxTopN          = 500
	defaultHistogramBuckets = 20
)

// Service evaluates participant batches and answers single-participant
// queries against one validated rule set.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine *scoring.Engine

	// Configuration
	rules            scoring.Rules
	workerCount      int
	policy           types.FailurePolicy
	topN             int
	maxTopN          int
	histogramBuckets int

	// State
	started      bool
	evaluations  atomic.Int64
	participants atomic.Int64
	skipped      atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rules:            scoring.DefaultRules(),
		workerCount:      runtime.NumCPU(),
		policy:           types.PolicyFail,
		topN:             defaultTopN,
		maxTopN:          defaultMaxTopN,
		histogramBuckets: defaultHistogramBuckets,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the rule set and builds the scoring engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	engine, err := scoring.NewEngine(scoring.WithRules(s.rules))
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.engine = engine
	s.started = true

	metrics.UpdateWorkerCount(s.workerCount)
	s.logger.Info(ctx, "scoring service started",
		logger.Int("workers", s.workerCount),
		logger.String("policy", string(s.policy)),
		logger.Int("milestones", len(s.rules.Milestones)),
		logger.Int("achievements", len(s.rules.Achievements)),
	)
	return nil
}

// Stop marks the service as stopped. In-flight evaluations finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.engine = nil
	s.logger.Info(context.Background(), "scoring service stopped")
}

func (s *Service) currentEngine() (*scoring.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.engine, nil
}

// Rules returns a copy of the active rule set.
func (s *Service) Rules(_ context.Context) (scoring.Rules, error) {
	engine, err := s.currentEngine()
	if err != nil {
		return scoring.Rules{}, err
	}
	return engine.Rules(), nil
}

// Score computes the scorecard for a single set of counters.
func (s *Service) Score(_ context.Context, counts model.ActivityCounts) (scoring.Scorecard, error) {
	engine, err := s.currentEngine()
	if err != nil {
		return scoring.Scorecard{}, err
	}
	metrics.RecordQuery("score")
	return engine.Score(counts)
}

// Level maps a point total to its level state.
func (s *Service) Level(_ context.Context, points int) (scoring.LevelState, error) {
	engine, err := s.currentEngine()
	if err != nil {
		return scoring.LevelState{}, err
	}
	metrics.RecordQuery("level")
	return engine.LevelOf(points)
}

// Rank ranks points within an ad-hoc population.
func (s *Service) Rank(_ context.Context, points int, population []int) (scoring.RankInfo, error) {
	engine, err := s.currentEngine()
	if err != nil {
		return scoring.RankInfo{}, err
	}
	metrics.RecordQuery("rank")
	return engine.RankOf(points, population)
}

// MaxTopN is the largest leaderboard length a caller may request.
func (s *Service) MaxTopN() int {
	return s.maxTopN
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"policy":       string(s.policy),
		"topN":         s.topN,
		"evaluations":  s.evaluations.Load(),
		"participants": s.participants.Load(),
		"skipped":      s.skipped.Load(),
	}
}
