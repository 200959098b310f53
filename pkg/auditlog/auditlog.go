package auditlog

import (
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/pkg/metadata"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/google/uuid"
)

type Auditable interface {
	CreateLogView() models.TransactionLog
}

// NewEntry builds the transaction log row written alongside a stock entry.
func NewEntry(item Auditable, action metadata.Action, user string, at time.Time) models.TransactionLog {
	entry := item.CreateLogView()
	entry.ID = uuid.NewString()
	entry.Action = action
	entry.User = user
	entry.Timestamp = at.UTC()

	return entry
}
