package providers

import (
	"net/http"

	"github.com/tripweaver/tripweaver/llm"
)

// DeepSeekProvider implements the DeepSeek OpenAI-compatible API.
type DeepSeekProvider struct {
	OpenAIProvider // Embed for the shared request/response codec
}

func init() {
	llm.RegisterProvider(&DeepSeekProvider{})
}

// Name returns the provider identifier.
func (d *DeepSeekProvider) Name() string {
	return "deepseek"
}

// DefaultModel returns the model used when none is configured.
func (d *DeepSeekProvider) DefaultModel() string {
	return "deepseek-chat"
}

// CredentialEnv returns the environment variable holding the API key.
func (d *DeepSeekProvider) CredentialEnv() string {
	return "DEEPSEEK_API_KEY"
}

// BuildURL constructs the DeepSeek chat completions endpoint.
func (d *DeepSeekProvider) BuildURL(baseURL string) string {
	return chatCompletionsURL(baseURL, "https://api.deepseek.com/v1")
}

// SetHeaders adds DeepSeek authentication headers.
func (d *DeepSeekProvider) SetHeaders(req *http.Request) {
	setBearerAuth(req, d.CredentialEnv())
}
