package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"prompt-lab/internal/logger"
	"prompt-lab/internal/model"
)

// JanitorService 清理过期的会话记录
type JanitorService struct {
	db        *gorm.DB
	log       *logger.Logger
	retention time.Duration
}

// NewJanitorService retentionDays <= 0 时不清理
func NewJanitorService(db *gorm.DB, log *logger.Logger, retentionDays int) *JanitorService {
	return &JanitorService{
		db:        db,
		log:       log.With("service", "JanitorService"),
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// PruneExpiredSessions 删除早于保留期的会话, 返回删除数量
func (s *JanitorService) PruneExpiredSessions(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	return s.PruneBefore(ctx, time.Now().Add(-s.retention))
}

func (s *JanitorService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.PromptSession{})
	if result.Error != nil {
		s.log.Error("Failed to prune sessions", "cutoff", cutoff, "error", result.Error)
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("Pruned expired sessions", "count", result.RowsAffected, "cutoff", cutoff)
	}
	return result.RowsAffected, nil
}
