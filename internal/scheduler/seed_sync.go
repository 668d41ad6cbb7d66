package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/transaction-report-api/internal/config"
	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
)

// SeedSyncConfig representa a configuração da recarga agendada do dataset
type SeedSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SeedSyncService recarrega periodicamente o dataset de vendas
type SeedSyncService struct {
	scheduler           *gocron.Scheduler
	config              SeedSyncConfig
	seeder              seeding.Seeder
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastSyncCount       int
}

func NewSeedSyncService(seeder seeding.Seeder, appConfig *config.Config) *SeedSyncService {
	syncConfig := SeedSyncConfig{
		CronSchedule: appConfig.SeedSync.CronSchedule,
		SyncEnabled:  appConfig.SeedSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("scheduler: seed sync configuration loaded")

	return &SeedSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		seeder:    seeder,
		baseCtx:   context.Background(),
	}
}

// Start agenda a recarga; o agendador para quando ctx for cancelado
func (s *SeedSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("scheduler: seed sync disabled by configuration")
		return nil
	}

	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting seed sync")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.syncDataset)
	if err != nil {
		return fmt.Errorf("erro ao agendar a recarga do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping seed sync")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SeedSyncService) syncDataset() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: seed sync already running, skipping")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	logrus.Info("scheduler: seed sync started")

	count, err := s.seeder.Seed(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("scheduler: seed sync failed")
		return
	}

	s.lastSyncError = ""
	s.lastSyncCount = count

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"count":    count,
	}).Info("scheduler: seed sync finished")
}

// TriggerManualSync dispara uma recarga fora do agendamento
func (s *SeedSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: seed sync already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("scheduler: manual seed sync requested")
	go s.syncDataset()
}

// GetStatus retorna o status atual da recarga
func (s *SeedSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_sync_count":        s.lastSyncCount,
	}
}
