package llm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripweaver/tripweaver/llm"
	_ "github.com/tripweaver/tripweaver/llm/providers" // Register providers
)

func TestSelect_ResolvesDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")

	endpoint, err := llm.Select("groq", "", "")
	require.NoError(t, err)

	assert.Equal(t, "groq", endpoint.Provider.Name())
	assert.Equal(t, "llama-3.1-8b-instant", endpoint.Model)
	assert.Equal(t, "test-key", endpoint.APIKey)
	assert.Empty(t, endpoint.BaseURL)
}

func TestSelect_Overrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "test-key")

	endpoint, err := llm.Select("deepseek", "https://proxy.internal/v1", "deepseek-reasoner")
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.internal/v1", endpoint.BaseURL)
	assert.Equal(t, "deepseek-reasoner", endpoint.Model)
}

func TestSelect_NormalizesName(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	endpoint, err := llm.Select("  OpenAI ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", endpoint.Provider.Name())
}

func TestSelect_MissingCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := llm.Select("groq", "", "")
	require.Error(t, err)

	var cfgErr *llm.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "groq", cfgErr.Provider)
	assert.Equal(t, "GROQ_API_KEY", cfgErr.EnvVar)
}

func TestSelect_WhitespaceCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "   ")

	_, err := llm.Select("groq", "", "")
	var cfgErr *llm.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestSelect_UnknownProvider(t *testing.T) {
	_, err := llm.Select("anthropic", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
	assert.Contains(t, err.Error(), "groq")
}
