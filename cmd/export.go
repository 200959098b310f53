package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/container"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/reports"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "export <receipts|consumption|valuation>",
		Short:     "Write a report file to disk.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(reports.KindReceipts), string(reports.KindConsumption), string(reports.KindValuation)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := reports.ParseKind(args[0])
			if err != nil {
				return err
			}
			formatFlag, _ := cmd.Flags().GetString("format")
			format, err := reports.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			outDir, _ := cmd.Flags().GetString("out")

			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				path, err := exportReport(ctx, c.Reports, kind, format, outDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().String("format", string(reports.FormatCSV), "File format: csv or xlsx")
	cmd.Flags().String("out", ".", "Directory the report is written to")

	return cmd
}

func exportReport(ctx context.Context, service *reports.Service, kind reports.Kind, format reports.Format, outDir string) (string, error) {
	artifact, err := service.Export(ctx, kind, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(outDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
