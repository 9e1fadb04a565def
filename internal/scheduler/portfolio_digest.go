// Package scheduler holds the background jobs of the API.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

// SnapshotTaker stores a portfolio audit and trims old ones.
type SnapshotTaker interface {
	TakeSnapshot(ctx context.Context, retain int) (*domain.PortfolioSnapshot, error)
}

type PortfolioDigestService struct {
	scheduler           *gocron.Scheduler
	auditor             SnapshotTaker
	config              config.PortfolioDigest
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSnapshotID      string
	lastError           string
}

func NewPortfolioDigestService(auditor SnapshotTaker, cfg *config.Config) *PortfolioDigestService {
	log.L.WithFields(log.Fields{
		"job_cron":      cfg.PortfolioDigest.CronSchedule,
		"job_enabled":   cfg.PortfolioDigest.Enabled,
		"job_retention": cfg.PortfolioDigest.Retention,
	}).Info("scheduler: portfolio digest configured")

	return &PortfolioDigestService{
		scheduler: gocron.NewScheduler(time.Local),
		auditor:   auditor,
		config:    cfg.PortfolioDigest,
	}
}

func (s *PortfolioDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("scheduler: portfolio digest disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		jobCtx, _ := log.WithCorrelationID(ctx)
		if err := s.RunDigest(jobCtx); err != nil {
			log.ForContext(jobCtx).WithError(err).Error("scheduler: portfolio digest failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: schedule portfolio digest: %w", err)
	}

	s.scheduler.StartAsync()
	log.L.WithField("job_cron", s.config.CronSchedule).Info("scheduler: portfolio digest started")

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: stopping portfolio digest")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest snapshots the portfolio. A run that starts while another is in progress is skipped.
func (s *PortfolioDigestService) RunDigest(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.ForContext(ctx).Warn("scheduler: portfolio digest already running")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	snapshot, err := s.auditor.TakeSnapshot(ctx, s.config.Retention)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.lastError = ""
	s.lastSnapshotID = snapshot.ID

	log.ForContext(ctx).WithFields(log.Fields{
		"snapshot_id":     snapshot.ID,
		"snapshot_brands": len(snapshot.Brands),
	}).Info("scheduler: portfolio digest completed")

	return nil
}

// TriggerManualSync starts a digest in the background unless one is already running.
func (s *PortfolioDigestService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.ForContext(ctx).Info("scheduler: portfolio digest in progress, manual trigger ignored")
		return false
	}

	jobCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.RunDigest(jobCtx); err != nil {
			log.ForContext(jobCtx).WithError(err).Error("scheduler: manual portfolio digest failed")
		}
	}()

	return true
}

func (s *PortfolioDigestService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"retention":              s.config.Retention,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_snapshot_id":       s.lastSnapshotID,
		"last_error":             s.lastError,
	}
}
