package models

import "strings"

// Provider names a hosted large-language-model completion service.
type Provider string

// Known providers
const (
	ProviderGemini   Provider = "gemini"
	ProviderGroq     Provider = "groq"
	ProviderDeepSeek Provider = "deepseek"
)

// KnownProviders lists every provider the gateway can be configured with,
// in display order.
var KnownProviders = []Provider{ProviderGemini, ProviderGroq, ProviderDeepSeek}

// ParseProvider normalizes name and returns the matching provider.
func ParseProvider(name string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range KnownProviders {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// EnvKey returns the environment variable holding the provider's API key.
func (p Provider) EnvKey() string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

// Provider health constants
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
	HealthUnknown   = "unknown"
)
