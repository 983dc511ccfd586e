package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/okian/arcadeboard/pkg/metrics"
)

// indexed is a record with its position in the request.
type indexed struct {
	index  int
	record model.Record
}

// scored is the phase-one result for one record.
type scored struct {
	participant types.Participant
	err         error
}

// Evaluate scores and ranks a batch of records and summarizes the population.
//
// Phase one scores records in parallel; phase two ranks them against a
// population built once from the records that survived phase one.
func (s *Service) Evaluate(ctx context.Context, req types.EvaluateRequest) (*types.Report, error) {
	engine, err := s.currentEngine()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	policy := req.Policy
	if policy == "" {
		policy = s.policy
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: unknown failure policy %q", scoring.ErrInvalidInput, policy)
	}
	if req.TopN < 0 {
		return nil, fmt.Errorf("%w: top_n must not be negative (%d)", scoring.ErrInvalidInput, req.TopN)
	}
	topN := req.TopN
	if topN == 0 {
		topN = s.topN
	}
	topN = min(topN, s.maxTopN)

	report, err := s.evaluate(ctx, engine, req, policy, topN)
	latency := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordEvaluation(string(policy), "error", latency)
		metrics.RecordEvaluationError(errorType(err))
		s.logger.Warn(ctx, "batch evaluation failed",
			logger.String("policy", string(policy)),
			logger.Int("records", len(req.Records)),
			logger.Error(err),
		)
		return nil, err
	}

	s.evaluations.Add(1)
	s.participants.Add(int64(len(report.Participants)))
	s.skipped.Add(int64(len(report.Skipped)))
	metrics.RecordEvaluation(string(policy), "ok", latency)
	metrics.RecordParticipants(len(report.Participants), len(report.Skipped))
	for _, m := range report.Summary.Milestones {
		metrics.UpdateMilestoneDistribution(string(m.Tier), m.Count)
	}

	s.logger.Info(ctx, "batch evaluated",
		logger.String("evaluation_id", report.EvaluationID),
		logger.String("policy", string(policy)),
		logger.Int("participants", len(report.Participants)),
		logger.Int("skipped", len(report.Skipped)),
		logger.Float64("latency_ms", latency),
	)
	return report, nil
}

func (s *Service) evaluate(ctx context.Context, engine *scoring.Engine, req types.EvaluateRequest, policy types.FailurePolicy, topN int) (*types.Report, error) {
	records := filterStatus(req.Records, req.Statuses)

	results, err := s.scoreAll(ctx, engine, records)
	if err != nil {
		return nil, err
	}

	participants := make([]types.Participant, 0, len(records))
	skipped := make([]types.SkippedRecord, 0)
	for i, r := range results {
		if r.err == nil {
			participants = append(participants, r.participant)
			continue
		}
		rec := records[i]
		if policy == types.PolicyFail {
			return nil, &RecordError{Index: rec.index, ID: r.participant.ID, Err: r.err}
		}
		skipped = append(skipped, types.SkippedRecord{
			Index:  rec.index,
			ID:     r.participant.ID,
			Name:   rec.record.Name,
			Reason: r.err.Error(),
		})
		s.logger.Warn(ctx, "skipping invalid record",
			logger.Int("index", rec.index),
			logger.String("id", r.participant.ID),
			logger.Error(r.err),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Barrier: every surviving total is known before any rank is computed.
	totals := make([]int, len(participants))
	for i := range participants {
		totals[i] = participants[i].Breakdown.TotalPoints
	}
	population := engine.NewPopulation(totals)
	for i := range participants {
		rank, err := population.RankOf(totals[i])
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", participants[i].ID, err)
		}
		participants[i].Rank = rank
	}

	return &types.Report{
		EvaluationID: uuid.NewString(),
		Policy:       policy,
		Participants: participants,
		Skipped:      skipped,
		Summary:      s.summarize(engine, participants, len(skipped), topN),
	}, nil
}

// scoreAll runs phase one over contiguous index ranges, one per worker.
// Results are placed by index so the output order matches the input.
func (s *Service) scoreAll(ctx context.Context, engine *scoring.Engine, records []indexed) ([]scored, error) {
	results := make([]scored, len(records))
	if len(records) == 0 {
		return results, nil
	}

	workers := min(s.workerCount, len(records))
	chunk := (len(records) + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < len(records); lo += chunk {
		hi := min(lo+chunk, len(records))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				results[i] = scoreRecord(engine, records[i].record)
			}
		}(lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scoreRecord(engine *scoring.Engine, r model.Record) scored {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	p := types.Participant{
		ID:     id,
		Name:   r.Name,
		Status: r.Status,
		Counts: r.Counts,
	}
	card, err := engine.Score(r.Counts)
	if err != nil {
		return scored{participant: p, err: err}
	}
	p.Scorecard = card
	return scored{participant: p}
}

// filterStatus keeps records whose status is listed; no statuses keeps all.
func filterStatus(records []model.Record, statuses []string) []indexed {
	out := make([]indexed, 0, len(records))
	for i, r := range records {
		if len(statuses) > 0 && !slices.Contains(statuses, r.Status) {
			continue
		}
		out = append(out, indexed{index: i, record: r})
	}
	return out
}

func errorType(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
