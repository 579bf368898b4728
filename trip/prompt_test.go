package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePlanMessages(t *testing.T) {
	req := Requirements{
		Destination: "东京",
		Budget:      6000,
		Days:        3,
		Interests:   []string{"美食", "历史"},
	}

	messages := ComposePlanMessages(req)
	require.Len(t, messages, 2)

	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, planSystemPrompt, messages[0].Content)

	assert.Equal(t, "user", messages[1].Role)
	user := messages[1].Content
	assert.Contains(t, user, "3天的东京旅行计划")
	assert.Contains(t, user, "预算6000元")
	assert.Contains(t, user, "美食、历史")

	// The instruction pins the response field names.
	for _, field := range []string{`"weather"`, `"attractions"`, `"itinerary"`, `"accommodation"`, `"tips"`} {
		assert.Contains(t, user, field)
	}
}

func TestComposePlanMessages_Deterministic(t *testing.T) {
	req := Requirements{Destination: "巴黎", Budget: 10000, Days: 5, Interests: []string{"艺术"}}
	assert.Equal(t, ComposePlanMessages(req), ComposePlanMessages(req))
}

func TestComposeAnswerMessages(t *testing.T) {
	plan := &Plan{
		Destination: "东京",
		Budget:      6000,
		Days:        3,
		Interests:   []string{"美食"},
		PlanDetails: PlanDetails{
			Weather:       "晴",
			Attractions:   []Attraction{{Text: "浅草寺"}},
			Itinerary:     []string{"第1天"},
			Accommodation: "新宿",
			Tips:          []string{"带伞"},
		},
	}

	messages, err := ComposeAnswerMessages("第一天去哪里？", plan)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, answerSystemPrompt, messages[0].Content)

	user := messages[1].Content
	assert.Contains(t, user, "第一天去哪里？")
	assert.Contains(t, user, "浅草寺", "serialized plan should be embedded")
	assert.Contains(t, user, "这是我的旅行计划")
}
