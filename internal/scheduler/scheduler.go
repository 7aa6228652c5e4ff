package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/inumeshi/internal/config"
	"github.com/mamadbah2/inumeshi/internal/service/reporting"
)

// CatalogReloader swaps in a freshly loaded ingredient catalog.
type CatalogReloader interface {
	Reload() error
}

// UsageReporter summarises calculation logs for a period.
type UsageReporter interface {
	WeeklySummary(ctx context.Context, start, end time.Time) (string, error)
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron     *cron.Cron
	catalog  CatalogReloader
	reporter UsageReporter
	cfg      config.ScheduleConfig
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler builds a scheduler running in the configured timezone.
// reporter may be nil when the calculation spreadsheet is not configured.
func NewScheduler(cfg config.ScheduleConfig, catalog CatalogReloader, reporter UsageReporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load scheduler timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		catalog:  catalog,
		reporter: reporter,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.catalog != nil && s.cfg.CatalogReload != "" {
		if _, err := s.cron.AddFunc(s.cfg.CatalogReload, s.reloadCatalog); err != nil {
			return fmt.Errorf("schedule catalog reload %q: %w", s.cfg.CatalogReload, err)
		}
	}

	if s.reporter != nil && s.cfg.UsageReport != "" {
		if _, err := s.cron.AddFunc(s.cfg.UsageReport, s.reportUsage); err != nil {
			return fmt.Errorf("schedule usage report %q: %w", s.cfg.UsageReport, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) reloadCatalog() {
	if err := s.catalog.Reload(); err != nil {
		s.logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
		return
	}
	s.logger.Debug("catalog reload job finished")
}

func (s *Scheduler) reportUsage() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start, end := reporting.LastWeek(s.now())
	report, err := s.reporter.WeeklySummary(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to generate usage report", zap.Error(err))
		return
	}

	s.logger.Info("weekly usage report", zap.String("report", report))
}
