package api

import (
	"fmt"
	"net/http"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/types"
)

// countsRequest carries raw counters. Negative or oversized values pass
// validation so the engine and the batch failure policy decide what happens
// to them.
type countsRequest struct {
	SkillBadges  int `json:"skill_badges"`
	ArcadeGames  int `json:"arcade_games"`
	TriviaGames  int `json:"trivia_games"`
	SpecialGames int `json:"special_games"`
}

func (c countsRequest) counts() model.ActivityCounts {
	return model.ActivityCounts{
		SkillBadges:  c.SkillBadges,
		ArcadeGames:  c.ArcadeGames,
		TriviaGames:  c.TriviaGames,
		SpecialGames: c.SpecialGames,
	}
}

type recordRequest struct {
	ID     string `json:"id" validate:"max=128"`
	Name   string `json:"name" validate:"max=256"`
	Status string `json:"status" validate:"max=64"`
	countsRequest
}

type evaluateRequest struct {
	Records  []recordRequest `json:"records" validate:"required,min=1,dive"`
	Policy   string          `json:"policy" validate:"omitempty,oneof=fail skip"`
	TopN     int             `json:"top_n" validate:"gte=0"`
	Statuses []string        `json:"statuses" validate:"dive,max=64"`
}

// handleEvaluate handles POST /v1/evaluate.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(req.Records) > s.maxBatchSize {
		s.fail(w, r, fmt.Errorf("%w: %d records exceed the batch limit of %d", ErrPayloadTooLarge, len(req.Records), s.maxBatchSize))
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err)
		return
	}

	records := make([]model.Record, len(req.Records))
	for i, rec := range req.Records {
		records[i] = model.Record{ID: rec.ID, Name: rec.Name, Status: rec.Status, Counts: rec.counts()}
	}

	report, err := s.deps.Evaluate(r.Context(), types.EvaluateRequest{
		Records:  records,
		Policy:   types.FailurePolicy(req.Policy),
		TopN:     req.TopN,
		Statuses: req.Statuses,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
