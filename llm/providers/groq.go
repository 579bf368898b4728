package providers

import (
	"net/http"

	"github.com/tripweaver/tripweaver/llm"
)

// GroqProvider implements the Groq OpenAI-compatible API.
type GroqProvider struct {
	OpenAIProvider // Embed for the shared request/response codec
}

func init() {
	llm.RegisterProvider(&GroqProvider{})
}

// Name returns the provider identifier.
func (g *GroqProvider) Name() string {
	return "groq"
}

// DefaultModel returns the model used when none is configured.
func (g *GroqProvider) DefaultModel() string {
	return "llama-3.1-8b-instant"
}

// CredentialEnv returns the environment variable holding the API key.
func (g *GroqProvider) CredentialEnv() string {
	return "GROQ_API_KEY"
}

// BuildURL constructs the Groq chat completions endpoint.
func (g *GroqProvider) BuildURL(baseURL string) string {
	return chatCompletionsURL(baseURL, "https://api.groq.com/openai/v1")
}

// SetHeaders adds Groq authentication headers.
func (g *GroqProvider) SetHeaders(req *http.Request) {
	setBearerAuth(req, g.CredentialEnv())
}
