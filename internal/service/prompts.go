package service

import (
	"fmt"
	"strings"
)

const fence = "```"

// MetaPrompt 为场景和领域设计专用 Prompt 模板
func MetaPrompt(scenario, domain string) string {
	return fmt.Sprintf(`作为Prompt工程专家，请为"%[1]s"场景在"%[2]s"领域设计一个高效的Prompt模板。

要求：
1. 明确角色定位和专业身份
2. 结构化输入格式
3. 具体输出要求
4. 质量检验标准
5. 包含实际应用示例

请按照以下格式输出：

**场景**: %[1]s
**领域**: %[2]s

**专用Prompt模板:**
[详细的Prompt模板内容]

**使用说明:**
[如何使用此模板的具体指导]

**预期效果:**
[使用此模板能达到的效果和价值]`, scenario, domain)
}

// PRDPrompt 基于需求生成产品需求文档
func PRDPrompt(requirements, context string) string {
	if strings.TrimSpace(context) == "" {
		context = "暂无额外背景信息"
	}
	return fmt.Sprintf(`作为资深产品经理，基于以下需求生成完整的产品需求文档(PRD)：

**原始需求:**
%s

**背景信息:**
%s

**请按照以下结构生成PRD:**

# 产品需求文档 (PRD)

## 1. 产品概述
- 产品名称
- 产品定位
- 目标用户群体

## 2. 需求背景
- 问题描述
- 市场机会
- 商业价值

## 3. 产品目标
- 核心目标
- 成功指标
- 预期收益

## 4. 功能需求
### 4.1 核心功能
- 功能列表
- 功能描述
- 优先级排序

### 4.2 功能规格
- 详细功能说明
- 交互流程
- 业务规则

## 5. 非功能需求
- 性能要求
- 安全要求
- 可用性要求

## 6. 技术要求
- 技术选型建议
- 架构约束
- 集成要求

## 7. 用户体验设计
- 界面要求
- 交互设计
- 响应式设计

## 8. 项目规划
- 开发阶段
- 时间计划
- 资源需求

## 9. 风险评估
- 技术风险
- 市场风险
- 资源风险

## 10. 验收标准
- 功能验收
- 性能验收
- 用户验收

请确保内容详细、专业且可执行。`, requirements, context)
}

// CodeReviewPrompt 多维度代码审查
func CodeReviewPrompt(code, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "作为资深%s代码审查专家，请对以下代码进行全面审查：\n\n", language)
	b.WriteString("**代码内容:**\n")
	b.WriteString(fence + language + "\n" + code + "\n" + fence + "\n\n")
	b.WriteString(`**请从以下维度进行审查:**

## 🔍 代码质量分析
- 可读性和代码风格
- 命名规范
- 代码结构和组织

## ⚡ 性能评估
- 时间复杂度分析
- 空间复杂度分析
- 潜在性能瓶颈

## 🔒 安全隐患
- 输入验证问题
- 潜在安全漏洞
- 数据安全风险

## 🛠 最佳实践
- 设计模式应用
- 错误处理机制
- 代码重用性

## 🎯 改进建议
- 具体修改方案
- 重构建议
- 性能优化方向

**请为每个问题提供具体的修改建议和代码示例。**`)
	return b.String()
}

// DebugPrompt 错误分析, code 和 context 为空时省略对应段落
func DebugPrompt(errMsg, code, context string) string {
	var b strings.Builder
	b.WriteString("作为调试专家，请分析以下错误：\n\n")
	b.WriteString("**错误信息:**\n" + errMsg + "\n\n")
	if code != "" {
		b.WriteString("**相关代码:**\n" + fence + "\n" + code + "\n" + fence + "\n\n")
	}
	if context != "" {
		b.WriteString("**上下文信息:**\n" + context + "\n\n")
	}
	b.WriteString(`**请按照以下结构进行分析:**

## 🎯 错误定位
- 错误类型分类
- 发生位置定位
- 触发条件分析

## 🔍 根因分析
- 直接原因
- 根本原因
- 相关因素

## ⚡ 解决方案
### 临时修复方案
- 快速解决方法
- 风险评估

### 长期解决方案
- 彻底修复方法
- 代码重构建议

## 🛡️ 预防措施
- 类似问题预防
- 代码质量改进
- 测试用例建议

**请提供具体的代码修改示例。**`)
	return b.String()
}
