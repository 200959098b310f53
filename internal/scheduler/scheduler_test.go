package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/integrations/mongodb"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/reports"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/memory"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSaver struct {
	mock.Mock
}

func (m *mockSaver) SaveSnapshot(ctx context.Context, snapshot mongodb.Snapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Archive(ctx context.Context, artifact *reports.Artifact, at time.Time) (string, error) {
	args := m.Called(ctx, artifact, at)
	return args.String(0), args.Error(1)
}

var snapshotTime = time.Date(2024, 1, 10, 17, 30, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, saver SnapshotSaver, archiver Archiver) *Scheduler {
	t.Helper()
	s := memory.NewSampleStore()
	reportSvc := reports.NewService(s, zap.NewNop()).WithClock(func() time.Time { return snapshotTime })
	sched, err := NewScheduler(config.SnapshotConfig{Timezone: "UTC"}, s, reportSvc, saver, archiver, zap.NewNop())
	require.NoError(t, err)
	sched.now = func() time.Time { return snapshotTime }
	return sched
}

func TestTakeSnapshot(t *testing.T) {
	saver := new(mockSaver)
	archiver := new(mockArchiver)
	archiver.On("Archive", mock.Anything, mock.MatchedBy(func(a *reports.Artifact) bool {
		return a.Filename == "stock_valuation_report_2024-01-10.csv" &&
			strings.HasPrefix(string(a.Body), "Item Code,Item Name,Current Stock,Unit,Rate Per Unit,Total Value")
	}), snapshotTime).Return("reports/2024/01/10/stock_valuation_report_2024-01-10.csv", nil).Once()
	saver.On("SaveSnapshot", mock.Anything, mock.MatchedBy(func(s mongodb.Snapshot) bool {
		return s.ItemCount == 5 && s.TotalValue == "195700" && s.ArchivedAs == "reports/2024/01/10/stock_valuation_report_2024-01-10.csv"
	})).Return(nil).Once()

	err := newTestScheduler(t, saver, archiver).TakeSnapshot(context.Background())

	require.NoError(t, err)
	saver.AssertExpectations(t)
	archiver.AssertExpectations(t)
}

func TestTakeSnapshotWithoutSinks(t *testing.T) {
	assert.NoError(t, newTestScheduler(t, nil, nil).TakeSnapshot(context.Background()))
}

func TestTakeSnapshotArchiveFailureSkipsSave(t *testing.T) {
	saver := new(mockSaver)
	archiver := new(mockArchiver)
	archiver.On("Archive", mock.Anything, mock.Anything, snapshotTime).Return("", errors.New("bucket missing")).Once()

	err := newTestScheduler(t, saver, archiver).TakeSnapshot(context.Background())

	assert.EqualError(t, err, "bucket missing")
	saver.AssertNotCalled(t, "SaveSnapshot", mock.Anything, mock.Anything)
}

func TestTakeSnapshotStoreFailure(t *testing.T) {
	mockStore := new(storetest.MockStore)
	mockStore.On("ListInventoryItems", mock.Anything).Return(nil, errors.New("offline")).Once()
	sched, err := NewScheduler(config.SnapshotConfig{}, mockStore, reports.NewService(mockStore, zap.NewNop()), nil, nil, zap.NewNop())
	require.NoError(t, err)

	assert.EqualError(t, sched.TakeSnapshot(context.Background()), "list inventory items: offline")
}

func TestStart(t *testing.T) {
	idle := newTestScheduler(t, nil, nil)
	assert.NoError(t, idle.Start())

	sched := newTestScheduler(t, nil, nil)
	sched.schedule = "not a cron"
	assert.Error(t, sched.Start())

	sched.schedule = "0 23 * * *"
	require.NoError(t, sched.Start())
	assert.Len(t, sched.cron.Entries(), 1)
	sched.Stop()
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.SnapshotConfig{Timezone: "Mars/Olympus"}, memory.NewStore(), nil, nil, nil, zap.NewNop())
	assert.Error(t, err)
}
