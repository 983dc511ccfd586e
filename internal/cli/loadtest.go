package cli

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/arcadeboard/internal/loadtest"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/spf13/cobra"
)

// Default load test settings.
const (
	defaultBatches   = 20
	defaultBatchSize = 1000
	defaultTimeout   = 30 * time.Second
)

func newLoadTestCmd() *cobra.Command {
	cfg := &loadtest.Config{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Submit generated batches to a running server and verify the reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			stats, err := loadtest.Run(cmd.Context(), cfg)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "batches: %d ok, %d failed, %d inconsistent; participants: %d in %s\n",
					stats.BatchesSucceeded, stats.BatchesFailed, stats.BatchesInconsistent,
					stats.ParticipantsEvaluated, stats.Duration.Round(time.Millisecond))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	cmd.Flags().IntVar(&cfg.Batches, "batches", defaultBatches, "Number of batches to submit")
	cmd.Flags().IntVar(&cfg.BatchSize, "batch-size", defaultBatchSize, "Records per batch")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Number of concurrent submitters")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 1, "Seed of the first generated batch")
	cmd.Flags().StringVar(&cfg.OutputFile, "output", "", "Save the generated batches to this JSON file")
	return cmd
}
