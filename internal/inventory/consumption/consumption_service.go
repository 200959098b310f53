package consumption

import (
	"context"
	"fmt"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/forms"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"go.uber.org/zap"
)

type Service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger.Named("consumption")}
}

type Preview struct {
	Draft Draft `json:"draft"`
	Assessment
}

type Submission struct {
	Consumption  *models.StockConsumptionEntry `json:"consumption"`
	Notification forms.Notification            `json:"notification"`
	Draft        Draft                         `json:"draft"`
}

func (s *Service) items(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.store.ListInventoryItems(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load inventory items", err)
	}
	return items, nil
}

func (s *Service) Preview(ctx context.Context, d Draft) (Preview, error) {
	items, err := s.items(ctx)
	if err != nil {
		return Preview{Draft: d}, err
	}
	return Preview{Draft: d, Assessment: Assess(d, items)}, nil
}

func (s *Service) SelectItem(ctx context.Context, d Draft, itemCode string) (Preview, error) {
	items, err := s.items(ctx)
	if err != nil {
		return Preview{Draft: d}, err
	}
	d = d.SelectItem(items, itemCode)
	return Preview{Draft: d, Assessment: Assess(d, items)}, nil
}

// Submit checks the draft against the stock as it is now and records it.
// Nothing is created when a check fails.
func (s *Service) Submit(ctx context.Context, d Draft) (*Submission, error) {
	if err := d.checkRequired(); err != nil {
		return nil, err
	}

	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}

	consumption, err := d.Record(items)
	if err != nil {
		s.logger.Info("Stock consumption refused", zap.String("item_code", d.ItemCode), zap.Error(err))
		return nil, err
	}

	entry, err := s.store.CreateStockConsumption(ctx, consumption)
	if err != nil {
		s.logger.Warn("Stock consumption rejected", zap.String("item_code", consumption.ItemCode), zap.Error(err))
		return nil, custom_error.AsRemote("Unable to record stock consumption", err)
	}

	s.logger.Info("Stock consumption recorded",
		zap.String("id", entry.ID),
		zap.String("item_code", entry.ItemCode),
		zap.String("quantity", entry.QuantityUsed.String()),
		zap.String("created_by", entry.CreatedBy),
	)

	var unit string
	if item, ok := models.FindItem(items, consumption.ItemCode); ok {
		unit = item.UnitOfMeasurement
	}

	return &Submission{
		Consumption: entry,
		Notification: forms.Notification{
			Title: "Stock Consumption Recorded",
			Message: fmt.Sprintf("Successfully recorded consumption of %s %s of %s",
				strings.TrimSpace(d.QuantityUsed), unit, consumption.ItemName),
		},
		Draft: Draft{},
	}, nil
}

func (s *Service) List(ctx context.Context) ([]models.StockConsumptionEntry, error) {
	entries, err := s.store.ListStockConsumption(ctx)
	if err != nil {
		return nil, custom_error.AsRemote("Unable to load stock consumption", err)
	}
	return entries, nil
}
