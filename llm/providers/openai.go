// Package providers implements the closed set of completion providers.
// All three speak the OpenAI chat-completions dialect; they differ only in
// default endpoint, credential variable, and default model.
package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/tripweaver/tripweaver/llm"
)

// OpenAIProvider implements the OpenAI chat completions API. It also serves
// as the shared request/response codec for the OpenAI-compatible providers.
type OpenAIProvider struct{}

func init() {
	llm.RegisterProvider(&OpenAIProvider{})
}

// Name returns the provider identifier.
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// DefaultModel returns the model used when none is configured.
func (o *OpenAIProvider) DefaultModel() string {
	return "gpt-4o-mini"
}

// CredentialEnv returns the environment variable holding the API key.
func (o *OpenAIProvider) CredentialEnv() string {
	return "OPENAI_API_KEY"
}

// BuildURL constructs the chat completions endpoint.
func (o *OpenAIProvider) BuildURL(baseURL string) string {
	return chatCompletionsURL(baseURL, "https://api.openai.com/v1")
}

// SetHeaders adds OpenAI authentication headers.
func (o *OpenAIProvider) SetHeaders(req *http.Request) {
	setBearerAuth(req, o.CredentialEnv())
}

// BuildRequestBody creates the chat completions request body.
func (o *OpenAIProvider) BuildRequestBody(model string, messages []llm.Message, temperature *float64, jsonObject bool) ([]byte, error) {
	return buildChatRequestBody(model, messages, temperature, jsonObject)
}

// ParseResponse extracts the first choice from a chat completions response.
func (o *OpenAIProvider) ParseResponse(body []byte) (*llm.Response, error) {
	return parseChatResponse(body)
}

// --- shared OpenAI-compatible codec ---

// chatCompletionsURL appends /chat/completions to baseURL, falling back to
// defaultBase when baseURL is empty.
func chatCompletionsURL(baseURL, defaultBase string) string {
	if baseURL == "" {
		baseURL = defaultBase
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

// setBearerAuth sets the Authorization header from the given env var.
func setBearerAuth(req *http.Request, envVar string) {
	if apiKey := strings.TrimSpace(os.Getenv(envVar)); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

// chatRequest is the OpenAI-compatible request format.
type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
	Temperature    *float64            `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

func buildChatRequestBody(model string, messages []llm.Message, temperature *float64, jsonObject bool) ([]byte, error) {
	apiMessages := make([]chatMessage, len(messages))
	for i, msg := range messages {
		apiMessages[i] = chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := chatRequest{
		Model:       model,
		Messages:    apiMessages,
		Temperature: temperature, // nil = provider default
	}

	if jsonObject {
		req.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	return json.Marshal(req)
}

// chatResponse is the OpenAI-compatible response format.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func parseChatResponse(body []byte) (*llm.Response, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse chat completions response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &llm.Response{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		TokensUsed:   resp.Usage.TotalTokens,
		FinishReason: resp.Choices[0].FinishReason,
	}, nil
}
