package providers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripweaver/tripweaver/llm"
)

func TestProvidersRegistered(t *testing.T) {
	for _, name := range []string{"groq", "deepseek", "openai"} {
		assert.NotNil(t, llm.GetProvider(name), "provider %s should be registered", name)
	}
}

func TestProviderDefaults(t *testing.T) {
	tests := []struct {
		name          string
		provider      llm.Provider
		defaultModel  string
		credentialEnv string
		defaultURL    string
	}{
		{"groq", &GroqProvider{}, "llama-3.1-8b-instant", "GROQ_API_KEY", "https://api.groq.com/openai/v1/chat/completions"},
		{"deepseek", &DeepSeekProvider{}, "deepseek-chat", "DEEPSEEK_API_KEY", "https://api.deepseek.com/v1/chat/completions"},
		{"openai", &OpenAIProvider{}, "gpt-4o-mini", "OPENAI_API_KEY", "https://api.openai.com/v1/chat/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.provider.Name())
			assert.Equal(t, tt.defaultModel, tt.provider.DefaultModel())
			assert.Equal(t, tt.credentialEnv, tt.provider.CredentialEnv())
			assert.Equal(t, tt.defaultURL, tt.provider.BuildURL(""))
		})
	}
}

func TestChatCompletionsURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"empty uses default", "", "https://api.openai.com/v1/chat/completions"},
		{"custom base", "https://proxy.internal/v1", "https://proxy.internal/v1/chat/completions"},
		{"trailing slash trimmed", "https://proxy.internal/v1/", "https://proxy.internal/v1/chat/completions"},
		{"full path untouched", "https://proxy.internal/v1/chat/completions", "https://proxy.internal/v1/chat/completions"},
	}

	p := &OpenAIProvider{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.BuildURL(tt.baseURL))
		})
	}
}

func TestSetHeaders(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "sk-groq-test")

	req, err := http.NewRequest(http.MethodPost, "https://api.groq.com/openai/v1/chat/completions", nil)
	require.NoError(t, err)

	(&GroqProvider{}).SetHeaders(req)
	assert.Equal(t, "Bearer sk-groq-test", req.Header.Get("Authorization"))
}

func TestSetHeaders_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	req, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil)
	require.NoError(t, err)

	(&OpenAIProvider{}).SetHeaders(req)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBuildRequestBody(t *testing.T) {
	messages := []llm.Message{
		{Role: "system", Content: "你是一位专业的旅行规划师"},
		{Role: "user", Content: "帮我规划东京之旅"},
	}
	temp := 0.7

	body, err := (&DeepSeekProvider{}).BuildRequestBody("deepseek-chat", messages, &temp, true)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "deepseek-chat", decoded["model"])
	assert.InDelta(t, 0.7, decoded["temperature"], 0.001)

	format, ok := decoded["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])

	msgs, ok := decoded["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestBuildRequestBody_Defaults(t *testing.T) {
	body, err := (&OpenAIProvider{}).BuildRequestBody("gpt-4o-mini", []llm.Message{{Role: "user", Content: "hi"}}, nil, false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	_, hasTemp := decoded["temperature"]
	assert.False(t, hasTemp, "nil temperature should be omitted")
	_, hasFormat := decoded["response_format"]
	assert.False(t, hasFormat, "response_format should be omitted when not requested")
}

func TestParseResponse(t *testing.T) {
	body := []byte(`{
		"id": "chatcmpl-1",
		"model": "llama-3.1-8b-instant",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "第1天：浅草寺"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 20, "completion_tokens": 30, "total_tokens": 50}
	}`)

	resp, err := (&GroqProvider{}).ParseResponse(body)
	require.NoError(t, err)

	assert.Equal(t, "第1天：浅草寺", resp.Content)
	assert.Equal(t, "llama-3.1-8b-instant", resp.Model)
	assert.Equal(t, 50, resp.TokensUsed)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestParseResponse_Errors(t *testing.T) {
	p := &OpenAIProvider{}

	_, err := p.ParseResponse([]byte(`not json`))
	require.Error(t, err)

	_, err = p.ParseResponse([]byte(`{"choices": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
