package service

import (
	"prompt-lab/internal/model"
	"prompt-lab/internal/provider"
)

type Architecture struct {
	ID          model.TemplateType `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Example     string             `json:"example"`
	Template    string             `json:"template"`
	UseCases    []string           `json:"useCases"`
}

type Scenario struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Category    model.TemplateCategory `json:"category"`
	Description string                 `json:"description"`
	Template    string                 `json:"template"`
}

type ProviderPreset struct {
	ID          provider.Provider `json:"id"`
	Name        string            `json:"name"`
	BaseURL     string            `json:"baseURL"`
	Models      []string          `json:"models"`
	Description string            `json:"description"`
	Configured  bool              `json:"configured"`
}

// CatalogService 静态目录数据, 服务商是否可用取决于进程凭据
type CatalogService struct {
	registry *provider.Registry
}

func NewCatalogService(registry *provider.Registry) *CatalogService {
	return &CatalogService{registry: registry}
}

func (s *CatalogService) Architectures() []Architecture {
	return architectures
}

func (s *CatalogService) Scenarios() []Scenario {
	return scenarios
}

func (s *CatalogService) Providers() []ProviderPreset {
	presets := make([]ProviderPreset, len(providerPresets))
	copy(presets, providerPresets)
	for i := range presets {
		presets[i].Configured = s.registry.Configured(presets[i].ID)
	}
	return presets
}

var architectures = []Architecture{
	{
		ID:          model.TypeZeroShot,
		Name:        "零样本提示",
		Description: "直接提出问题或任务，适用于明确、标准化的场景",
		Example:     "请解释什么是RESTful API的核心原则",
		Template:    "请详细解释[具体概念或技术]的核心要点和最佳实践。",
		UseCases:    []string{"技术概念解释", "标准化问题回答", "基础知识查询"},
	},
	{
		ID:          model.TypeFewShot,
		Name:        "少样本提示",
		Description: "提供示例帮助AI理解期望的格式和风格",
		Example: `示例1: function add(a, b) → 返回两个数的和
示例2: function multiply(a, b) → 返回两个数的乘积

现在请为: function divide(a, b) 写注释`,
		Template: `示例1: [输入1] → [期望输出1]
示例2: [输入2] → [期望输出2]

现在请为: [新输入] 提供相同格式的输出`,
		UseCases: []string{"格式化输出", "风格统一", "模式识别"},
	},
	{
		ID:          model.TypeChainOfThought,
		Name:        "思维链提示",
		Description: "引导AI逐步推理，适用于复杂的逻辑分析",
		Example: `请逐步分析这个性能问题：
1. 首先识别瓶颈点
2. 然后分析根本原因
3. 最后提出优化方案`,
		Template: `请逐步分析[问题描述]：
1. 首先[分析步骤1]
2. 然后[分析步骤2]
3. 最后[分析步骤3]`,
		UseCases: []string{"复杂问题分析", "逐步推理", "决策制定"},
	},
	{
		ID:          model.TypeRolePlaying,
		Name:        "角色扮演",
		Description: "设定特定身份和专业视角进行分析",
		Example:     "作为资深产品经理，请分析这个用户需求的优先级和实现难度",
		Template:    "作为[专业角色]，请从[视角]角度分析[具体问题]",
		UseCases:    []string{"专业分析", "多角度思考", "专家建议"},
	},
}

var scenarios = []Scenario{
	{
		ID:          "code-review",
		Name:        "代码审查",
		Category:    model.CategoryDevelopment,
		Description: "自动化代码质量检查和改进建议",
		Template: `作为资深代码审查专家，请检查以下代码的：
- 性能问题
- 安全隐患
- 可维护性
- 最佳实践符合度

[在此粘贴要审查的代码]`,
	},
	{
		ID:          "debug-analysis",
		Name:        "调试分析",
		Category:    model.CategoryDevelopment,
		Description: "智能错误分析和解决方案推荐",
		Template: `作为调试专家，请分析以下错误：
1. 错误类型和可能原因
2. 修复建议和步骤
3. 预防类似问题的最佳实践

错误信息：[具体错误信息]
相关代码：[相关代码片段]`,
	},
	{
		ID:          "prd-generation",
		Name:        "PRD生成",
		Category:    model.CategoryProduct,
		Description: "基于需求自动生成产品需求文档",
		Template: `作为产品经理，基于以下需求生成完整PRD：

核心需求：[核心功能需求]
用户场景：[目标用户和使用场景]
约束条件：[技术和业务约束]

请包含：功能规格、技术要求、验收标准`,
	},
	{
		ID:          "requirement-analysis",
		Name:        "需求分析",
		Category:    model.CategoryProduct,
		Description: "用户反馈的结构化需求分析",
		Template: `作为产品经理，基于用户反馈分析需求：

用户反馈：[具体反馈内容]

输出：
- 核心需求提取
- 优先级评估 (P0/P1/P2)
- 实现建议和资源评估
- 潜在风险和依赖`,
	},
}

var providerPresets = []ProviderPreset{
	{
		ID:          provider.OpenAI,
		Name:        "OpenAI",
		BaseURL:     "https://api.openai.com/v1",
		Models:      []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"},
		Description: "OpenAI 官方 API",
	},
	{
		ID:          provider.Anthropic,
		Name:        "Anthropic Claude",
		BaseURL:     "https://api.anthropic.com",
		Models:      []string{"claude-3-sonnet-20240229", "claude-3-opus-20240229", "claude-3-haiku-20240307"},
		Description: "Anthropic Claude API",
	},
	{
		ID:          provider.DeepSeek,
		Name:        "DeepSeek",
		BaseURL:     "https://api.deepseek.com/v1",
		Models:      []string{"deepseek-chat", "deepseek-coder"},
		Description: "DeepSeek AI API",
	},
	{
		ID:          provider.Custom,
		Name:        "自定义",
		Models:      []string{},
		Description: "兼容 OpenAI 接口的自定义服务",
	},
}
