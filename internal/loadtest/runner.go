package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/internal/testrecords"
	"github.com/okian/arcadeboard/pkg/logger"
)

const directoryPermission = 0o750

// Run submits cfg.Batches generated batches and verifies each report. It
// returns the collected statistics even when some batches fail.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("loadtest")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("batches", cfg.Batches),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := newHTTPClient(cfg.Timeout)
	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	batches := generate(cfg)
	if cfg.OutputFile != "" {
		if err := saveBatches(cfg.OutputFile, batches); err != nil {
			log.Warn(ctx, "failed to save batches", logger.Error(err))
		}
	}

	failures := submit(ctx, client, cfg, batches, stats)
	for _, f := range failures {
		log.Warn(ctx, "batch failed", logger.Int("batch", f.Batch), logger.Error(f.Err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.ParticipantsEvaluated) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.BatchesSubmitted),
		logger.Int("succeeded", stats.BatchesSucceeded),
		logger.Int("failed", stats.BatchesFailed),
		logger.Int("inconsistent", stats.BatchesInconsistent),
		logger.Int("participants", stats.ParticipantsEvaluated),
		logger.Duration("duration", stats.Duration),
		logger.Float64("participantsPerSecond", perSecond),
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if len(failures) > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrBatchesFailed, len(failures), len(batches))
	}
	return stats, nil
}

// checkHealth verifies the service is running.
func checkHealth(ctx context.Context, client *httpClient, baseURL string) error {
	resp, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

func generate(cfg *Config) [][]model.Record {
	batches := make([][]model.Record, cfg.Batches)
	for i := range batches {
		batches[i] = testrecords.New(cfg.Seed + uint64(i)).Records(cfg.BatchSize)
	}
	return batches
}

// submit posts batches through a pool of cfg.Workers goroutines.
func submit(ctx context.Context, client *httpClient, cfg *Config, batches [][]model.Record, stats *Stats) []Failure {
	url := cfg.BaseURL + "/v1/evaluate"
	jobs := make(chan int, cfg.Workers*2)

	var (
		mu       sync.Mutex
		failures []Failure
		wg       sync.WaitGroup
	)
	record := func(i, participants int, err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.BatchesSubmitted++
		switch {
		case err == nil:
			stats.BatchesSucceeded++
			stats.ParticipantsEvaluated += participants
			return
		case errors.Is(err, ErrInconsistent):
			stats.BatchesInconsistent++
		default:
			stats.BatchesFailed++
		}
		failures = append(failures, Failure{Batch: i, Err: err})
	}

	for range max(cfg.Workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				var report types.Report
				err := client.postJSON(ctx, url, toBody(batches[i], cfg.BatchSize), &report)
				if err == nil {
					err = verifyReport(batches[i], &report)
				}
				record(i, len(report.Participants), err)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()
	return failures
}

// saveBatches writes the generated batches as a JSON array of arrays.
func saveBatches(path string, batches [][]model.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batches: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
