package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"prompt-lab/config"
	"prompt-lab/internal/logger"
	"prompt-lab/internal/service"
)

type Scheduler struct {
	cron           *cron.Cron
	janitor        *service.JanitorService
	config         config.CronConfig
	log            *logger.Logger
	cleanupEntryID cron.EntryID
}

func NewScheduler(janitor *service.JanitorService, cfg config.CronConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		janitor: janitor,
		config:  cfg,
		log:     log.With("component", "Scheduler"),
	}
}

func (s *Scheduler) Start() error {
	// 会话清理任务
	id, err := s.cron.AddFunc(s.config.CleanupInterval, func() {
		s.log.Info("[Cron] Pruning expired sessions...")
		if _, err := s.janitor.PruneExpiredSessions(context.Background()); err != nil {
			s.log.Warn("[Cron] Session cleanup failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cleanupEntryID = id

	s.cron.Start()
	s.log.Info("[Cron] Scheduler started", "cleanup", s.config.CleanupInterval, "retention_days", s.config.SessionRetentionDays)
	return nil
}

// GetNextCleanupTime 获取下次清理时间
func (s *Scheduler) GetNextCleanupTime() time.Time {
	entry := s.cron.Entry(s.cleanupEntryID)
	return entry.Next
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
