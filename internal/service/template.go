package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"prompt-lab/internal/model"
)

var ErrInvalidTemplate = errors.New("invalid template")

type TemplateInput struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    model.TemplateCategory `json:"category"`
	Type        model.TemplateType     `json:"type"`
	Content     string                 `json:"content"`
	Tags        []string               `json:"tags"`
}

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// ListPublic 公开模板, 最新的在前
func (s *TemplateService) ListPublic() ([]model.PromptTemplate, error) {
	templates := []model.PromptTemplate{}
	err := s.db.Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

// Create 新建模板, 通过接口创建的模板总是公开的
func (s *TemplateService) Create(in TemplateInput) (*model.PromptTemplate, error) {
	if !model.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidTemplate, in.Category)
	}
	if !model.ValidType(in.Type) {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidTemplate, in.Type)
	}

	if in.Tags == nil {
		in.Tags = []string{}
	}
	tags, err := json.Marshal(in.Tags)
	if err != nil {
		return nil, err
	}

	tpl := &model.PromptTemplate{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Content:     in.Content,
		Tags:        datatypes.JSON(tags),
		IsPublic:    true,
	}
	if err := s.db.Create(tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}

// SeedDefaults 写入内置模板, 同名模板已存在则跳过
func (s *TemplateService) SeedDefaults() (int, error) {
	created := 0
	for _, in := range seedTemplates {
		var count int64
		if err := s.db.Model(&model.PromptTemplate{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if _, err := s.Create(in); err != nil {
			return created, fmt.Errorf("seed %s: %w", in.Name, err)
		}
		created++
	}
	return created, nil
}

var seedTemplates = []TemplateInput{
	{
		Name:        "代码审查专家",
		Description: "专业的代码质量审查和改进建议",
		Category:    model.CategoryDevelopment,
		Type:        model.TypeRolePlaying,
		Content: `作为资深代码审查专家，请检查以下代码的：
- 性能问题和优化建议
- 安全隐患和防护措施
- 可维护性和代码结构
- 最佳实践符合度
- 潜在的bug和错误处理

请提供具体的修改建议和代码示例。`,
		Tags: []string{"代码审查", "质量保证", "最佳实践"},
	},
	{
		Name:        "智能调试助手",
		Description: "错误分析和调试解决方案",
		Category:    model.CategoryDevelopment,
		Type:        model.TypeChainOfThought,
		Content: `作为调试专家，请逐步分析以下错误：

1. 首先识别错误类型和可能原因
2. 然后分析错误发生的具体环境和条件
3. 接下来提供具体的修复步骤和代码示例
4. 最后建议预防类似问题的最佳实践

错误信息：[在此输入错误信息]
相关代码：[在此输入相关代码]`,
		Tags: []string{"调试", "错误分析", "问题解决"},
	},
	{
		Name:        "产品需求分析师",
		Description: "用户需求的结构化分析和优先级评估",
		Category:    model.CategoryProduct,
		Type:        model.TypeRolePlaying,
		Content: `作为产品经理，基于用户反馈进行需求分析：

用户反馈：[在此输入用户反馈]

请输出：
## 需求理解
- 核心痛点识别
- 用户场景分析
- 真实需求挖掘

## 方案评估
- 解决方案建议
- 技术可行性分析
- 资源需求评估

## 优先级判断
- 紧急程度 (高/中/低)
- 重要程度 (P0/P1/P2)
- 影响范围评估
- 实施建议和时间规划`,
		Tags: []string{"需求分析", "产品规划", "用户研究"},
	},
	{
		Name:        "PRD文档生成器",
		Description: "自动生成产品需求文档",
		Category:    model.CategoryProduct,
		Type:        model.TypeFewShot,
		Content: `作为产品经理，基于需求生成完整的PRD文档：

核心需求：[输入核心功能需求]
用户场景：[输入目标用户和使用场景]
约束条件：[输入技术和业务约束]

请按照以下结构生成PRD：

# 产品需求文档

## 1. 产品概述
## 2. 需求背景
## 3. 功能规格
## 4. 技术要求
## 5. 用户体验设计
## 6. 验收标准
## 7. 风险评估
## 8. 项目规划`,
		Tags: []string{"PRD", "产品文档", "需求管理"},
	},
	{
		Name:        "API设计专家",
		Description: "RESTful API设计和规范建议",
		Category:    model.CategoryDevelopment,
		Type:        model.TypeRolePlaying,
		Content: `作为API设计专家，请设计以下API接口：

业务需求：[输入业务功能描述]
数据模型：[输入涉及的数据实体]
性能要求：[输入QPS、响应时间等要求]

请提供：
## API设计
- 接口路径和HTTP方法
- 请求参数和响应格式
- 状态码和错误处理

## 技术规范
- 认证和授权方案
- 数据验证规则
- 缓存策略

## 最佳实践
- RESTful设计原则
- 性能优化建议
- 安全防护措施`,
		Tags: []string{"API设计", "RESTful", "系统架构"},
	},
}
