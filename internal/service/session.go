package service

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"prompt-lab/internal/model"
)

const (
	defaultSessionLimit = 10
	maxSessionLimit     = 100
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Record 保存一次生成记录, 每次调用都新建一条
func (s *SessionService) Record(templateID *string, prompt string, res *Result) (*model.PromptSession, error) {
	meta, err := json.Marshal(model.SessionMetadata{
		Provider:      string(res.Config.Provider),
		Model:         res.Config.Model,
		ExecutionTime: res.Elapsed.Milliseconds(),
		Temperature:   res.Config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if templateID != nil && *templateID == "" {
		templateID = nil
	}

	session := &model.PromptSession{
		TemplateID: templateID,
		UserPrompt: prompt,
		AIResponse: res.Text,
		Metadata:   datatypes.JSON(meta),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// List 按创建时间倒序分页, 附带模板摘要
func (s *SessionService) List(limit, offset int) ([]model.PromptSession, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if limit > maxSessionLimit {
		limit = maxSessionLimit
	}
	if offset < 0 {
		offset = 0
	}

	sessions := []model.PromptSession{}
	err := s.db.
		Preload("Template", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "category", "type")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}
