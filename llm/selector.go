package llm

import (
	"fmt"
	"os"
	"strings"
)

// Endpoint is a resolved provider/credential/model triple, ready for use
// by the Client. BaseURL may be empty to select the provider default.
type Endpoint struct {
	Provider Provider
	BaseURL  string
	Model    string
	APIKey   string
}

// Select resolves the named provider against its credential environment
// variable. It fails before any network call when the credential is absent,
// so a misconfigured deployment surfaces at startup rather than on the first
// user request. baseURL and model override the provider defaults when
// non-empty.
func Select(name, baseURL, model string) (*Endpoint, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	provider := GetProvider(name)
	if provider == nil {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", name, strings.Join(ListProviders(), ", "))
	}

	apiKey := strings.TrimSpace(os.Getenv(provider.CredentialEnv()))
	if apiKey == "" {
		return nil, &ConfigurationError{
			Provider: provider.Name(),
			EnvVar:   provider.CredentialEnv(),
		}
	}

	if model == "" {
		model = provider.DefaultModel()
	}

	return &Endpoint{
		Provider: provider,
		BaseURL:  baseURL,
		Model:    model,
		APIKey:   apiKey,
	}, nil
}
