package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type evaluateOptions struct {
	batchFlags
	format string
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate FILE",
		Short: "Score a cohort export and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, root, opts, args[0])
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json, yaml or table")
	return cmd
}

func runEvaluate(cmd *cobra.Command, root *rootOptions, opts *evaluateOptions, path string) error {
	format := strings.ToLower(opts.format)
	switch format {
	case formatJSON, formatYAML, formatTable:
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or table)", opts.format)
	}

	svc, err := root.startService(cmd)
	if err != nil {
		return err
	}
	defer svc.Stop()

	report, err := opts.evaluateFile(cmd, svc, path)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report, format)
}

func writeReport(w io.Writer, report *types.Report, format string) error {
	switch format {
	case formatYAML:
		// Round-trip through JSON so YAML keys match the JSON field names.
		raw, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatTable:
		return writeTable(w, report)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
}

func writeTable(w io.Writer, report *types.Report) error {
	s := report.Summary
	fmt.Fprintf(w, "Participants: %d (active %d, skipped %d)\n", s.Participants, s.Active, s.Skipped)
	fmt.Fprintf(w, "Points:       total %d, mean %.2f, max %d\n\n", s.Totals.Points.Sum, s.Totals.Points.Mean, s.Points.Max)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tNAME\tPOINTS\tMILESTONE\tBADGES\tARCADE\tTRIVIA")
	for _, e := range s.Leaderboard {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			e.Label, e.Name, e.Points, e.Milestone, e.SkillBadges, e.ArcadeGames, e.TriviaGames)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintln(w)
		for _, sk := range report.Skipped {
			fmt.Fprintf(w, "skipped #%d %s: %s\n", sk.Index, sk.ID, sk.Reason)
		}
	}
	return nil
}
