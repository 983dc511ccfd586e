// Package loadtest drives a running scoring server with generated batches and
// checks every returned report for internal consistency.
package loadtest

import "time"

// Config holds configuration for a load test run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Batches    int           // Number of batches to submit
	BatchSize  int           // Records per batch
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Seed       uint64        // Seed of the first batch; batch i uses Seed+i
	OutputFile string        // Optional JSON file for the generated batches
}

// Stats holds load test statistics.
type Stats struct {
	BatchesSubmitted      int
	BatchesSucceeded      int
	BatchesFailed         int
	BatchesInconsistent   int
	ParticipantsEvaluated int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}

// Failure describes one batch that did not come back clean.
type Failure struct {
	Batch int
	Err   error
}
