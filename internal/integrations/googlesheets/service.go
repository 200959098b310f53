package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const localCredentialsFile = "configs/google-credentials.json"

// Reader returns the raw cell values of a sheet range.
type Reader interface {
	ReadSpreadsheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

type Client struct {
	sheetsService *sheets.Service
}

// NewClient authenticates with the service account in credentialsJSON, or
// with configs/google-credentials.json when it is empty.
func NewClient(ctx context.Context, credentialsJSON string, logger *zap.Logger) (*Client, error) {
	raw := []byte(credentialsJSON)
	if credentialsJSON == "" {
		logger.Info("Using Google credentials from local file", zap.String("path", localCredentialsFile))
		b, err := os.ReadFile(localCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		raw = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return &Client{sheetsService: sheetsService}, nil
}

func (c *Client) ReadSpreadsheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.sheetsService.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %w", err)
	}
	return resp.Values, nil
}

// ImportResult summarises one import run.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  []RowError `json:"skipped"`
}

// ItemImporter copies the stock sheet into the inventory.
type ItemImporter struct {
	reader        Reader
	target        store.ItemImporter
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

func NewItemImporter(reader Reader, target store.ItemImporter, cfg config.SheetsConfig, logger *zap.Logger) *ItemImporter {
	return &ItemImporter{
		reader:        reader,
		target:        target,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.Range,
		logger:        logger.Named("sheets"),
	}
}

func (i *ItemImporter) Import(ctx context.Context) (*ImportResult, error) {
	if i.spreadsheetID == "" {
		return nil, errors.New("GOOGLE_SHEET_ID is not configured")
	}

	values, err := i.reader.ReadSpreadsheet(ctx, i.spreadsheetID, i.readRange)
	if err != nil {
		return nil, err
	}

	items, skipped := ParseItems(values)
	for _, rowErr := range skipped {
		i.logger.Warn("Skipping sheet row", zap.Int("row", rowErr.Row), zap.String("reason", rowErr.Reason))
	}
	if len(items) == 0 {
		return &ImportResult{Skipped: skipped}, nil
	}

	imported, err := i.target.UpsertInventoryItems(ctx, items)
	if err != nil {
		return nil, err
	}

	i.logger.Info("Inventory imported from sheet", zap.Int("imported", imported), zap.Int("skipped", len(skipped)))
	return &ImportResult{Imported: imported, Skipped: skipped}, nil
}
