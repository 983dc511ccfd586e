// Package types contains common types used across the application
package types

import (
	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/scoring"
)

// FailurePolicy decides what happens to a batch when one record is invalid.
type FailurePolicy string

// Supported failure policies.
const (
	PolicyFail FailurePolicy = "fail" // reject the whole batch
	PolicySkip FailurePolicy = "skip" // drop the record and report it
)

// Valid reports whether p is a known policy.
func (p FailurePolicy) Valid() bool {
	return p == PolicyFail || p == PolicySkip
}

// EvaluateRequest is one batch evaluation call.
type EvaluateRequest struct {
	Records  []model.Record
	Policy   FailurePolicy // empty uses the service default
	TopN     int           // 0 uses the service default
	Statuses []string      // keep only these redeem statuses; empty keeps all
}

// Participant is the read-only, per-batch view of one evaluated record.
type Participant struct {
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Status string               `json:"status,omitempty"`
	Counts model.ActivityCounts `json:"counts"`
	scoring.Scorecard
	Rank scoring.RankInfo `json:"rank"`
}

// Entry represents a leaderboard entry
type Entry struct {
	Position    int          `json:"position"`
	Medal       string       `json:"medal,omitempty"`
	Label       string       `json:"label"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Points      int          `json:"points"`
	Milestone   scoring.Tier `json:"milestone"`
	SkillBadges int          `json:"skill_badges"`
	ArcadeGames int          `json:"arcade_games"`
	TriviaGames int          `json:"trivia_games"`
	Status      string       `json:"status,omitempty"`
}

// SkippedRecord identifies a record excluded from a batch and why.
type SkippedRecord struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Report is the result of a batch evaluation.
type Report struct {
	EvaluationID string          `json:"evaluation_id"`
	Policy       FailurePolicy   `json:"policy"`
	Participants []Participant   `json:"participants"`
	Skipped      []SkippedRecord `json:"skipped"`
	Summary      Summary         `json:"summary"`
}
