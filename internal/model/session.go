package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PromptSession 一次非流式生成的记录, 创建后不再修改
type PromptSession struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	TemplateID *string         `gorm:"size:36;index" json:"templateId,omitempty"`
	Template   *PromptTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	UserPrompt string          `gorm:"type:text;not null" json:"userPrompt"`
	AIResponse string          `gorm:"type:text" json:"aiResponse"`
	Metadata   datatypes.JSON  `json:"metadata"`
	CreatedAt  time.Time       `gorm:"index" json:"createdAt"`
}

type SessionMetadata struct {
	Provider      string  `json:"provider"`
	Model         string  `json:"model"`
	ExecutionTime int64   `json:"executionTime"` // 毫秒
	Temperature   float64 `json:"temperature"`
}

func (s *PromptSession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
