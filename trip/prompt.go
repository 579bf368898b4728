package trip

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripweaver/tripweaver/llm"
)

// planSystemPrompt fixes the assistant's role and language for plan generation.
const planSystemPrompt = "你是一位专业的旅行规划师，请根据用户的需求生成详细的旅行计划。请用中文回复。"

// answerSystemPrompt fixes the assistant's role for follow-up questions.
const answerSystemPrompt = "你是一位专业的旅行规划师，根据提供的旅行计划回答用户的问题。请用中文回复，回答要友好、专业、详细。"

// ComposePlanMessages builds the instruction messages for plan generation.
// The user instruction states the requirements, enumerates the five required
// facets, and pins the exact JSON shape the response must carry. Pure
// function of its input.
func ComposePlanMessages(req Requirements) []llm.Message {
	user := fmt.Sprintf(`请为我生成一个%d天的%s旅行计划，预算%d元。我的兴趣包括%s。请包含以下内容：
1. 天气情况
2. 推荐景点（至少3个）
3. 详细行程安排（每天的具体安排）
4. 住宿建议
5. 旅行小贴士（至少3条）

请使用JSON格式输出，确保返回有效的JSON，包含以下字段：
{
  "weather": "天气情况的详细描述",
  "attractions": ["景点1", "景点2", "景点3"],
  "itinerary": ["第1天的详细安排", "第2天的详细安排", ...],
  "accommodation": "住宿建议的详细描述",
  "tips": ["小贴士1", "小贴士2", "小贴士3"]
}`, req.Days, req.Destination, req.Budget, strings.Join(req.Interests, "、"))

	return []llm.Message{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: user},
	}
}

// ComposeAnswerMessages builds the messages for a follow-up question about an
// existing plan. The stored plan is serialized into the user instruction so
// answers stay grounded in what was actually generated.
func ComposeAnswerMessages(question string, plan *Plan) ([]llm.Message, error) {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize plan: %w", err)
	}

	user := fmt.Sprintf("这是我的旅行计划：%s\n\n用户的问题：%s\n\n请提供友好、专业的回答。", planJSON, question)

	return []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: user},
	}, nil
}
