package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/container"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/sampledata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	seedSourceSample = "sample"
	seedSourceSheets = "sheets"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load inventory items into the configured store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				return seed(ctx, c, source, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().String("source", seedSourceSample, "Where items come from: sample or sheets")

	return cmd
}

func seed(ctx context.Context, c *container.Container, source string, out io.Writer) error {
	switch source {
	case seedSourceSheets:
		if c.Importer == nil {
			return errors.New("GOOGLE_SHEET_ID is not configured")
		}
		result, err := c.Importer.Import(ctx)
		if err != nil {
			return err
		}
		for _, skipped := range result.Skipped {
			c.Logger.Warn("Row skipped", zap.Int("row", skipped.Row), zap.String("reason", skipped.Reason))
		}
		fmt.Fprintf(out, "imported %d items, skipped %d rows\n", result.Imported, len(result.Skipped))
		return nil
	case seedSourceSample:
		importer, ok := c.Store.(store.ItemImporter)
		if !ok {
			return errors.New("store does not support item import")
		}
		n, err := importer.UpsertInventoryItems(ctx, sampledata.Items())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d items\n", n)
		return nil
	default:
		return fmt.Errorf("unknown seed source %q, expected %s or %s", source, seedSourceSample, seedSourceSheets)
	}
}
