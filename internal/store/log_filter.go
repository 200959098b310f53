package store

import (
	"context"
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"
)

// LogFilter narrows the transaction log. Zero values match everything.
type LogFilter struct {
	Type     metadata.TransactionType
	ItemCode string
	Limit    int
}

func (f LogFilter) Match(log models.TransactionLog) bool {
	if f.Type != "" && log.Type != f.Type {
		return false
	}
	if f.ItemCode != "" && !strings.EqualFold(log.ItemCode, f.ItemCode) {
		return false
	}
	return true
}

// Apply keeps the order of logs and cuts the result at Limit.
func (f LogFilter) Apply(logs []models.TransactionLog) []models.TransactionLog {
	filtered := make([]models.TransactionLog, 0, len(logs))
	for _, log := range logs {
		if !f.Match(log) {
			continue
		}
		filtered = append(filtered, log)
		if f.Limit > 0 && len(filtered) == f.Limit {
			break
		}
	}
	return filtered
}

// LogFinder is implemented by stores that can filter the log server side.
type LogFinder interface {
	FindTransactionLogs(ctx context.Context, filter LogFilter) ([]models.TransactionLog, error)
}

// FindTransactionLogs uses the store's own filtering when it has one and
// falls back to filtering the full list.
func FindTransactionLogs(ctx context.Context, s Store, filter LogFilter) ([]models.TransactionLog, error) {
	if finder, ok := s.(LogFinder); ok {
		return finder.FindTransactionLogs(ctx, filter)
	}
	logs, err := s.ListTransactionLogs(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(logs), nil
}
