package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/integrations/mongodb"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/ledger"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/reports"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snapshot mongodb.Snapshot) error
}

type Archiver interface {
	Archive(ctx context.Context, artifact *reports.Artifact, at time.Time) (string, error)
}

// Scheduler takes the nightly valuation snapshot: the ledger goes to
// MongoDB and the valuation CSV to the report archive. Either sink may be
// nil.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	store     store.Store
	reports   *reports.Service
	snapshots SnapshotSaver
	archive   Archiver
	now       func() time.Time
	logger    *zap.Logger
}

func NewScheduler(cfg config.SnapshotConfig, s store.Store, reportSvc *reports.Service, snapshots SnapshotSaver, archive Archiver, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location := time.Local
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
		location = loc
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		schedule:  cfg.CronSchedule,
		store:     s,
		reports:   reportSvc,
		snapshots: snapshots,
		archive:   archive,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Start registers the snapshot job and starts the cron loop. An empty
// schedule leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured, scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.TakeSnapshot(ctx); err != nil {
		s.logger.Error("valuation snapshot failed", zap.Error(err))
	}
}

// TakeSnapshot archives the valuation report and records the ledger.
func (s *Scheduler) TakeSnapshot(ctx context.Context) error {
	at := s.now()

	items, err := s.store.ListInventoryItems(ctx)
	if err != nil {
		return fmt.Errorf("list inventory items: %w", err)
	}
	snapshot := mongodb.NewSnapshot(ledger.Summarize(items), at)

	if s.archive != nil {
		artifact, err := s.reports.Export(ctx, reports.KindValuation, reports.FormatCSV)
		if err != nil {
			return fmt.Errorf("export valuation report: %w", err)
		}
		objectName, err := s.archive.Archive(ctx, artifact, at)
		if err != nil {
			return err
		}
		snapshot.ArchivedAs = objectName
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}

	s.logger.Info("valuation snapshot taken",
		zap.Int("items", snapshot.ItemCount),
		zap.String("total_value", snapshot.TotalValue),
		zap.String("archived_as", snapshot.ArchivedAs),
	)
	return nil
}
