package models

// UsageState holds one day's per-provider AI call counters.
// Date is a local calendar date in YYYY-MM-DD form.
type UsageState struct {
	Date   string           `json:"date"`
	Counts map[Provider]int `json:"counts"`
}

// NewUsageState returns a zeroed state for date.
func NewUsageState(date string) UsageState {
	return UsageState{Date: date, Counts: map[Provider]int{}}
}

// Used returns the number of calls recorded for p.
func (u UsageState) Used(p Provider) int {
	return u.Counts[p]
}

// Total returns the number of calls recorded across all providers.
func (u UsageState) Total() int {
	total := 0
	for _, n := range u.Counts {
		total += n
	}
	return total
}

// ProviderLimits is the static daily quota configuration.
type ProviderLimits struct {
	PerProvider map[Provider]int `json:"per_provider"`
	Total       int              `json:"total"`
}

// Limit returns the daily limit for p. A provider without its own entry is
// bounded by the aggregate limit only.
func (l ProviderLimits) Limit(p Provider) int {
	if n, ok := l.PerProvider[p]; ok {
		return n
	}
	return l.Total
}

// Remaining describes the quota left for one provider today.
type Remaining struct {
	PerProviderRemaining int `json:"per_provider_remaining"`
	TotalRemaining       int `json:"total_remaining"`
	PerProviderLimit     int `json:"per_provider_limit"`
	TotalLimit           int `json:"total_limit"`
}

// Allows reports whether both the provider and the aggregate quota have room.
func (r Remaining) Allows() bool {
	return r.PerProviderRemaining > 0 && r.TotalRemaining > 0
}
