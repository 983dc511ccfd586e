package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/okian/arcadeboard/internal/adapters/export"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	batchFlags
	xlsxPath  string
	csvPath   string
	chartPath string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Score a cohort export and write workbook, CSV or chart files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts, args[0])
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "Write the report workbook to this path")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Write the participant table to this path")
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "Write the points histogram PNG to this path")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions, path string) error {
	if opts.xlsxPath == "" && opts.csvPath == "" && opts.chartPath == "" {
		return errors.New("nothing to export: set at least one of --xlsx, --csv, --chart")
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

	writers := []struct {
		path  string
		write func(*bytes.Buffer, *types.Report) error
	}{
		{opts.xlsxPath, func(b *bytes.Buffer, r *types.Report) error { return export.WriteXLSX(b, r) }},
		{opts.csvPath, func(b *bytes.Buffer, r *types.Report) error { return export.WriteCSV(b, r.Participants) }},
		{opts.chartPath, func(b *bytes.Buffer, r *types.Report) error {
			png, err := export.PointsHistogramPNG(r.Summary)
			if err != nil {
				return err
			}
			_, err = b.Write(png)
			return err
		}},
	}
	for _, wr := range writers {
		if wr.path == "" {
			continue
		}
		var buf bytes.Buffer
		if err := wr.write(&buf, report); err != nil {
			return err
		}
		if err := os.WriteFile(wr.path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", wr.path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", wr.path)
	}
	return nil
}
