package cli

import (
	"github.com/okian/arcadeboard/internal/adapters/source"
	service "github.com/okian/arcadeboard/internal/app"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/spf13/cobra"
)

// batchFlags are the evaluation knobs shared by every subcommand.
type batchFlags struct {
	policy   string
	top      int
	statuses []string
}

func (b *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.policy, "policy", "", "Failure policy for invalid rows: fail or skip (default from config)")
	cmd.Flags().IntVar(&b.top, "top", 0, "Leaderboard length (default from config)")
	cmd.Flags().StringSliceVar(&b.statuses, "status", nil, "Keep only rows with these redeem statuses (repeatable)")
}

// evaluateFile loads path and evaluates it with svc.
func (b *batchFlags) evaluateFile(cmd *cobra.Command, svc *service.Service, path string) (*types.Report, error) {
	records, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	return svc.Evaluate(cmd.Context(), types.EvaluateRequest{
		Records:  records,
		Policy:   types.FailurePolicy(b.policy),
		TopN:     b.top,
		Statuses: b.statuses,
	})
}
