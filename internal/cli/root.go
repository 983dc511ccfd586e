// Package cli implements the scorecard command-line interface using Cobra.
// Each subcommand reads a cohort export and runs it through the scoring service.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	service "github.com/okian/arcadeboard/internal/app"
	"github.com/okian/arcadeboard/internal/config"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the scorecard command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "scorecard",
		Short: "Score arcade cohort exports",
		Long: `scorecard turns a cohort activity export (CSV or XLSX) into points,
milestones, levels, ranks and a leaderboard.

Configuration is read from --config (or $ARCADE_CONFIG) and ARCADE_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file (default $ARCADE_CONFIG)")

	root.AddCommand(newEvaluateCmd(opts), newExportCmd(opts), newLoadTestCmd())
	return root
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.Version = version

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// startService loads configuration, sends logs to the command's stderr and
// starts a scoring service. Callers stop it when done.
func (o *rootOptions) startService(cmd *cobra.Command) (*service.Service, error) {
	ctx := cmd.Context()

	path := o.configPath
	if path == "" {
		path = os.Getenv("ARCADE_CONFIG")
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(service.WithConfig(cfg), service.WithLogger(logger.Named("cli")))
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
