package api

import (
	"fmt"
	"net/http"
	"strconv"
)

type rankRequest struct {
	Points     *int  `json:"points" validate:"required"`
	Population []int `json:"population"`
}

// handleScore handles POST /v1/score.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req countsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	card, err := s.deps.Score(r.Context(), req.counts())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// handleLevel handles GET /v1/level?points=N.
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("points")
	points, err := strconv.Atoi(raw)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: points must be an integer, got %q", ErrBadRequest, raw))
		return
	}
	level, err := s.deps.Level(r.Context(), points)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, level)
}

// handleRank handles POST /v1/rank.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.check(req); err != nil {
		s.fail(w, r, err)
		return
	}
	info, err := s.deps.Rank(r.Context(), *req.Points, req.Population)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleRules handles GET /v1/rules.
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.deps.Rules(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}
