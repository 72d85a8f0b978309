package models

import "time"

// ResolveResponse contains the result of a stateless resolution.
type ResolveResponse struct {
	Query      string     `json:"query"`
	Provider   Provider   `json:"provider"`
	Resolution Resolution `json:"resolution"`
}

// FAQAnswerResponse is returned by the FAQ lookup-by-id endpoint.
type FAQAnswerResponse struct {
	Answer *string `json:"answer"`
}

// CompletionResponse is the success body of a provider proxy endpoint.
type CompletionResponse struct {
	Text     string   `json:"text"`
	Provider Provider `json:"provider"`
}

// ProviderHealth contains the last probe result for a provider.
type ProviderHealth struct {
	Provider  Provider   `json:"provider"`
	Status    string     `json:"status"`
	CheckedAt *time.Time `json:"checked_at"`
	Error     string     `json:"error,omitempty"`
}

// DashboardStats contains the counts shown on the admin dashboard.
type DashboardStats struct {
	FAQCount   int64 `json:"faq_count"`
	AdminCount int64 `json:"admin_count"`
}
