package receipts

import (
	"context"
	"fmt"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger.Named("receipts")}
}

type Preview struct {
	Draft      Draft           `json:"draft"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Submission is the outcome of an accepted receipt. Draft is the cleared
// form.
type Submission struct {
	Receipt      *models.StockReceiptEntry `json:"receipt"`
	Notification forms.Notification        `json:"notification"`
	Draft        Draft                     `json:"draft"`
}

func (s *Service) Preview(d Draft) Preview {
	return Preview{Draft: d, TotalValue: d.TotalValue()}
}

// SelectItem applies an item selection against the current item list.
func (s *Service) SelectItem(ctx context.Context, d Draft, itemCode string) (Preview, error) {
	items, err := s.store.ListInventoryItems(ctx)
	if err != nil {
		return Preview{Draft: d}, custom_error.AsRemote("Unable to load inventory items", err)
	}
	return s.Preview(d.SelectItem(items, itemCode)), nil
}

// Submit validates the draft and records it. On any error nothing is
// created and the caller keeps its draft.
func (s *Service) Submit(ctx context.Context, d Draft) (*Submission, error) {
	receipt, err := d.Record()
	if err != nil {
		return nil, err
	}

	entry, err := s.store.CreateStockReceipt(ctx, receipt)
	if err != nil {
		s.logger.Warn("Stock receipt rejected", zap.String("item_code", receipt.ItemCode), zap.Error(err))
		return nil, custom_error.AsRemote("Unable to record stock receipt", err)
	}

	s.logger.Info("Stock receipt recorded",
		zap.String("id", entry.ID),
		zap.String("item_code", entry.ItemCode),
		zap.String("quantity", entry.QuantityReceived.String()),
		zap.String("created_by", entry.CreatedBy),
	)

	return &Submission{
		Receipt: entry,
		Notification: forms.Notification{
			Title: "Stock Receipt Recorded",
			Message: fmt.Sprintf("Successfully recorded receipt of %s %s of %s",
				strings.TrimSpace(d.QuantityReceived), strings.TrimSpace(d.UnitOfMeasurement), strings.TrimSpace(d.ItemName)),
		},
		Draft: Draft{},
	}, nil
}

func (s *Service) List(ctx context.Context) ([]models.StockReceiptEntry, error) {
	receipts, err := s.store.ListStockReceipts(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load stock receipts", err)
	}
	return receipts, nil
}
