package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/format"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	recentLimit     = 5
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown format %q, expected csv or xlsx", value)
	}
}

// Artifact is a rendered report ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service struct {
	store  store.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, now: time.Now, logger: logger.Named("reports")}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) rows(ctx context.Context, kind Kind) ([]Row, error) {
	switch kind {
	case KindReceipts:
		entries, err := s.store.ListStockReceipts(ctx)
		if err != nil {
			return nil, custom_error.AsRemote("Unable to load stock receipts", err)
		}
		return ReceiptRows(entries), nil
	case KindConsumption:
		entries, err := s.store.ListStockConsumption(ctx)
		if err != nil {
			return nil, custom_error.AsRemote("Unable to load stock consumption", err)
		}
		return ConsumptionRows(entries), nil
	case KindValuation:
		items, err := s.store.ListInventoryItems(ctx)
		if err != nil {
			return nil, custom_error.AsRemote("Unable to load inventory items", err)
		}
		return ValuationRows(items), nil
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}

// Export reads the current records for kind and renders them.
func (s *Service) Export(ctx context.Context, kind Kind, f Format) (*Artifact, error) {
	rows, err := s.rows(ctx, kind)
	if err != nil {
		return nil, err
	}

	def := DefinitionOf(kind)
	at := s.now()
	artifact := &Artifact{Filename: Filename(def.FilePrefix, at, string(f))}

	switch f {
	case FormatXLSX:
		artifact.ContentType = contentTypeXLSX
		artifact.Body, err = ExportXLSX(def.Title, rows, def.Labels)
	default:
		artifact.ContentType = contentTypeCSV
		var text string
		text, err = Export(rows, def.Labels)
		artifact.Body = []byte(text)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", kind, err)
	}

	s.logger.Info("Report exported",
		zap.String("kind", string(kind)),
		zap.String("filename", artifact.Filename),
		zap.Int("rows", len(rows)),
	)
	return artifact, nil
}

type RecentReceipt struct {
	ItemName          string          `json:"item_name"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	SupplierName      string          `json:"supplier_name"`
	DeliveryDate      metadata.Date   `json:"delivery_date"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

type RecentConsumption struct {
	ItemName     string          `json:"item_name"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	ActivityCode string          `json:"activity_code"`
	Date         metadata.Date   `json:"date"`
	UsedBy       string          `json:"used_by"`
}

type Summary struct {
	ReceiptCount              int                 `json:"receipt_count"`
	ConsumptionCount          int                 `json:"consumption_count"`
	TotalReceivedValue        decimal.Decimal     `json:"total_received_value"`
	TotalReceivedValueDisplay string              `json:"total_received_value_display"`
	CurrentStockValue         decimal.Decimal     `json:"current_stock_value"`
	CurrentStockValueDisplay  string              `json:"current_stock_value_display"`
	RecentReceipts            []RecentReceipt     `json:"recent_receipts"`
	RecentConsumption         []RecentConsumption `json:"recent_consumption"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	receipts, err := s.store.ListStockReceipts(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load stock receipts", err)
	}
	consumption, err := s.store.ListStockConsumption(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load stock consumption", err)
	}
	items, err := s.store.ListInventoryItems(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load inventory items", err)
	}

	return Summarize(receipts, consumption, items), nil
}

// Summarize computes the reports overview. The lists are expected newest
// first.
func Summarize(receipts []models.StockReceiptEntry, consumption []models.StockConsumptionEntry, items []models.InventoryItem) *Summary {
	summary := &Summary{
		ReceiptCount:       len(receipts),
		ConsumptionCount:   len(consumption),
		TotalReceivedValue: decimal.Zero,
		CurrentStockValue:  decimal.Zero,
		RecentReceipts:     []RecentReceipt{},
		RecentConsumption:  []RecentConsumption{},
	}

	for i, r := range receipts {
		summary.TotalReceivedValue = summary.TotalReceivedValue.Add(r.TotalValue)
		if i < recentLimit {
			summary.RecentReceipts = append(summary.RecentReceipts, RecentReceipt{
				ItemName:          r.ItemName,
				QuantityReceived:  r.QuantityReceived,
				UnitOfMeasurement: r.UnitOfMeasurement,
				SupplierName:      r.SupplierName,
				DeliveryDate:      r.DeliveryDate,
				TotalValue:        r.TotalValue,
			})
		}
	}
	for i, c := range consumption {
		if i == recentLimit {
			break
		}
		summary.RecentConsumption = append(summary.RecentConsumption, RecentConsumption{
			ItemName:     c.ItemName,
			QuantityUsed: c.QuantityUsed,
			ActivityCode: metadata.ShortActivityCode(c.PurposeActivityCode),
			Date:         c.Date,
			UsedBy:       c.UsedBy,
		})
	}
	for _, item := range items {
		summary.CurrentStockValue = summary.CurrentStockValue.Add(item.TotalValue)
	}

	summary.TotalReceivedValueDisplay = format.Rupees(summary.TotalReceivedValue)
	summary.CurrentStockValueDisplay = format.Rupees(summary.CurrentStockValue)
	return summary
}
