package service

import (
	"time"

	"gorm.io/gorm"

	"prompt-lab/internal/model"
	"prompt-lab/internal/provider"
)

type StatusService struct {
	db       *gorm.DB
	registry *provider.Registry
}

type SystemStatus struct {
	// 会话统计
	TotalSessions int64 `json:"total_sessions"`
	TodaySessions int64 `json:"today_sessions"`

	// 模板统计
	TotalTemplates  int64 `json:"total_templates"`
	PublicTemplates int64 `json:"public_templates"`

	// 已配置进程级凭据的服务商
	Providers map[provider.Provider]bool `json:"providers"`

	// 定时任务信息
	NextCleanupTime time.Time `json:"next_cleanup_time"`
}

func NewStatusService(db *gorm.DB, registry *provider.Registry) *StatusService {
	return &StatusService{db: db, registry: registry}
}

// GetSystemStatus 获取系统状态
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{Providers: make(map[provider.Provider]bool)}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&model.PromptSession{}).Count(&status.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.PromptSession{}).Where("created_at >= ?", midnight).Count(&status.TodaySessions).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.PromptTemplate{}).Count(&status.TotalTemplates).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.PromptTemplate{}).Where("is_public = ?", true).Count(&status.PublicTemplates).Error; err != nil {
		return nil, err
	}

	for _, p := range s.registry.Providers() {
		status.Providers[p] = s.registry.Configured(p)
	}

	return status, nil
}
