package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"edunex/internal/models"
	"edunex/internal/validation"
)

// AssistantConfig represents the structure of the assistant.yaml file.
// Vocabulary and quota tables that are easier to manage in YAML than env vars.
// It is loaded once at startup and treated as read-only; slice and map
// accessors return copies.
type AssistantConfig struct {
	InstitutionName     string                    `yaml:"institution_name"`
	InstitutionURL      string                    `yaml:"institution_url"`
	FocusTopics         []string                  `yaml:"focus_topics"`     // Words that trigger the "Regarding <institution>" prefix
	DepartmentCodes     []string                  `yaml:"department_codes"` // Composite lookup departments, in match order
	CompositeTopics     []string                  `yaml:"composite_topics"` // Composite lookup topics, in match order
	Limits              LimitsConfig              `yaml:"limits"`
	Providers           map[string]ProviderConfig `yaml:"providers"`
	Timezone            string                    `yaml:"timezone"`             // IANA zone for the daily usage rollover
	ConfirmationTimeout string                    `yaml:"confirmation_timeout"` // e.g. "5m"
}

// LimitsConfig defines daily AI call quotas.
type LimitsConfig struct {
	PerProvider map[string]int `yaml:"per_provider"`
	Total       int            `yaml:"total"`
}

// ProviderConfig defines how one provider is reached.
type ProviderConfig struct {
	Endpoint          string  `yaml:"endpoint,omitempty"` // Remote {prompt}->{text} endpoint; empty calls the upstream API in-process
	Model             string  `yaml:"model,omitempty"`
	BaseURL           string  `yaml:"base_url,omitempty"` // Upstream API base override
	Temperature       float32 `yaml:"temperature,omitempty"`
	MaxTokens         int     `yaml:"max_tokens,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"` // 0 = unthrottled
	Burst             int     `yaml:"burst,omitempty"`
}

// DefaultAssistantConfig returns the built-in configuration used when no
// YAML file is present.
func DefaultAssistantConfig() *AssistantConfig {
	return &AssistantConfig{
		InstitutionName: "Nilgiri College",
		InstitutionURL:  "https://nilgiricollege.ac.in/",
		FocusTopics:     []string{"fee", "fees", "syllabus", "admission", "course", "bca", "bcom", "bba", "msc", "mca"},
		DepartmentCodes: []string{"bca", "bcom", "bba", "bsc", "ba", "mca", "msc"},
		CompositeTopics: []string{"fees", "syllabus", "admission", "curriculum"},
		Limits: LimitsConfig{
			PerProvider: map[string]int{"gemini": 20, "groq": 30},
			Total:       60,
		},
		Providers: map[string]ProviderConfig{
			"gemini":   {Model: "gemini-1.5-flash", Temperature: 0.5, MaxTokens: 1024},
			"groq":     {Model: "llama-3.1-8b-instant", MaxTokens: 1024},
			"deepseek": {Model: "deepseek-chat", Temperature: 0.7, MaxTokens: 1024},
		},
		Timezone:            "Local",
		ConfirmationTimeout: "5m",
	}
}

// LoadAssistantConfig loads the assistant configuration file.
// Path is determined by ASSISTANT_CONFIG env var, defaulting to "assistant.yaml".
// Returns the defaults without error if the file doesn't exist.
func LoadAssistantConfig() (*AssistantConfig, error) {
	return LoadAssistantConfigFile(getEnv("ASSISTANT_CONFIG", "assistant.yaml"))
}

// LoadAssistantConfigFile loads the assistant configuration from path,
// filling unset fields from DefaultAssistantConfig.
func LoadAssistantConfigFile(path string) (*AssistantConfig, error) {
	cfg := DefaultAssistantConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg AssistantConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.merge(&fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AssistantConfig) merge(o *AssistantConfig) {
	if o.InstitutionName != "" {
		c.InstitutionName = o.InstitutionName
	}
	if o.InstitutionURL != "" {
		c.InstitutionURL = o.InstitutionURL
	}
	if len(o.FocusTopics) > 0 {
		c.FocusTopics = o.FocusTopics
	}
	if len(o.DepartmentCodes) > 0 {
		c.DepartmentCodes = o.DepartmentCodes
	}
	if len(o.CompositeTopics) > 0 {
		c.CompositeTopics = o.CompositeTopics
	}
	if len(o.Limits.PerProvider) > 0 {
		c.Limits.PerProvider = o.Limits.PerProvider
	}
	if o.Limits.Total > 0 {
		c.Limits.Total = o.Limits.Total
	}
	for name, p := range o.Providers {
		base := c.Providers[name]
		if p.Endpoint != "" {
			base.Endpoint = p.Endpoint
		}
		if p.Model != "" {
			base.Model = p.Model
		}
		if p.BaseURL != "" {
			base.BaseURL = p.BaseURL
		}
		if p.Temperature != 0 {
			base.Temperature = p.Temperature
		}
		if p.MaxTokens != 0 {
			base.MaxTokens = p.MaxTokens
		}
		if p.RequestsPerSecond != 0 {
			base.RequestsPerSecond = p.RequestsPerSecond
		}
		if p.Burst != 0 {
			base.Burst = p.Burst
		}
		c.Providers[name] = base
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.ConfirmationTimeout != "" {
		c.ConfirmationTimeout = o.ConfirmationTimeout
	}
}

// Validate checks provider names, limits, timezone and timeout.
func (c *AssistantConfig) Validate() error {
	for name := range c.Limits.PerProvider {
		if _, ok := models.ParseProvider(name); !ok {
			return fmt.Errorf("limits: unknown provider %q", name)
		}
	}
	for name, p := range c.Providers {
		if _, ok := models.ParseProvider(name); !ok {
			return fmt.Errorf("providers: unknown provider %q", name)
		}
		if p.Endpoint != "" {
			if ok, msg := validation.ValidateURL(p.Endpoint); !ok {
				return fmt.Errorf("providers.%s.endpoint: %s", name, msg)
			}
		}
	}
	if c.Limits.Total < 0 {
		return fmt.Errorf("limits: total must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, err := time.ParseDuration(c.ConfirmationTimeout); err != nil {
		return fmt.Errorf("confirmation_timeout: %w", err)
	}
	return nil
}

// ProviderLimits returns the daily quotas keyed by provider.
func (c *AssistantConfig) ProviderLimits() models.ProviderLimits {
	limits := models.ProviderLimits{
		PerProvider: make(map[models.Provider]int, len(c.Limits.PerProvider)),
		Total:       c.Limits.Total,
	}
	for name, n := range c.Limits.PerProvider {
		if p, ok := models.ParseProvider(name); ok {
			limits.PerProvider[p] = n
		}
	}
	return limits
}

// ProviderEndpoints returns the configured remote endpoints keyed by provider.
func (c *AssistantConfig) ProviderEndpoints() map[models.Provider]string {
	endpoints := make(map[models.Provider]string)
	for name, p := range c.Providers {
		if p.Endpoint == "" {
			continue
		}
		if prov, ok := models.ParseProvider(name); ok {
			endpoints[prov] = p.Endpoint
		}
	}
	return endpoints
}

// Provider returns the settings for one provider.
func (c *AssistantConfig) Provider(p models.Provider) ProviderConfig {
	return c.Providers[string(p)]
}

// Focus returns a normalized copy of the focus topic words.
func (c *AssistantConfig) Focus() []string {
	return normalizeList(c.FocusTopics)
}

// Departments returns a normalized copy of the department codes.
func (c *AssistantConfig) Departments() []string {
	return normalizeList(c.DepartmentCodes)
}

// Topics returns a normalized copy of the composite topics.
func (c *AssistantConfig) Topics() []string {
	return normalizeList(c.CompositeTopics)
}

// Location returns the time zone used for the daily usage rollover.
func (c *AssistantConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Timeout returns the confirmation timeout, zero if unparsable.
func (c *AssistantConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.ConfirmationTimeout)
	if err != nil {
		return 0
	}
	return d
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
