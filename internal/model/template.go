package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TemplateCategory string

const (
	CategoryDevelopment TemplateCategory = "development"
	CategoryProduct     TemplateCategory = "product"
	CategoryGeneral     TemplateCategory = "general"
)

// TemplateType 对应四种 Prompt 架构
type TemplateType string

const (
	TypeZeroShot       TemplateType = "zero-shot"
	TypeFewShot        TemplateType = "few-shot"
	TypeChainOfThought TemplateType = "chain-of-thought"
	TypeRolePlaying    TemplateType = "role-playing"
)

type PromptTemplate struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Category    TemplateCategory `gorm:"size:32;index;not null" json:"category"`
	Type        TemplateType     `gorm:"size:32;not null" json:"type"`
	Content     string           `gorm:"type:text;not null" json:"content"`
	Tags        datatypes.JSON   `json:"tags"`
	IsPublic    bool             `gorm:"default:true;index" json:"isPublic"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (t *PromptTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func ValidCategory(c TemplateCategory) bool {
	switch c {
	case CategoryDevelopment, CategoryProduct, CategoryGeneral:
		return true
	}
	return false
}

func ValidType(t TemplateType) bool {
	switch t {
	case TypeZeroShot, TypeFewShot, TypeChainOfThought, TypeRolePlaying:
		return true
	}
	return false
}
