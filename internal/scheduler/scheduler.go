package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/config"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/repository/mongodb"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/service/analytics"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/store"
	"github.com/AI-Development-Kosi-Uzo/nourish-note/pkg/metrics"
)

// Scheduler manages the recurring refresh and snapshot jobs.
type Scheduler struct {
	cron         *cron.Cron
	stores       *store.Manager
	analyticsSvc *analytics.Service
	archive      mongodb.Repository
	metrics      *metrics.Metrics
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. Cron expressions run in the
// configured timezone, falling back to UTC when it cannot be loaded.
func NewScheduler(cfg config.Config, stores *store.Manager, analyticsSvc *analytics.Service, archive mongodb.Repository, m *metrics.Metrics, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Jobs.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, scheduling in UTC", zap.String("timezone", cfg.Jobs.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		stores:       stores,
		analyticsSvc: analyticsSvc,
		archive:      archive,
		metrics:      m,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("refresh", s.cfg.Jobs.RefreshCron),
		zap.String("snapshot", s.cfg.Jobs.SnapshotCron))

	if _, err := s.cron.AddFunc(s.cfg.Jobs.RefreshCron, s.refreshStores); err != nil {
		s.logger.Error("failed to schedule store refresh", zap.Error(err))
	}

	if s.archive == nil {
		s.logger.Warn("snapshot archive unavailable, weekly snapshot job disabled")
	} else if _, err := s.cron.AddFunc(s.cfg.Jobs.SnapshotCron, s.archiveWeeklySnapshot); err != nil {
		s.logger.Error("failed to schedule weekly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshStores() {
	s.logger.Info("refreshing stores")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s.stores.RefreshAll(ctx)
}

func (s *Scheduler) archiveWeeklySnapshot() {
	s.logger.Info("building weekly snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot := s.analyticsSvc.BuildSnapshot(time.Now())
	err := s.archive.SaveSnapshot(ctx, snapshot)
	if s.metrics != nil {
		s.metrics.ObserveSnapshotJob(err)
	}
	if err != nil {
		s.logger.Error("failed to archive weekly snapshot", zap.Error(err))
		return
	}

	s.logger.Info("weekly snapshot archived",
		zap.Time("week_start", snapshot.WeekStart),
		zap.Int("meal_count", snapshot.MealCount))
}
