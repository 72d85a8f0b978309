package models

import "time"

// Resolution outcome constants
const (
	OutcomeMatched   = "matched"
	OutcomeSuggested = "suggested"
	OutcomeComposite = "composite"
	OutcomeAI        = "ai"
	OutcomeError     = "error"
	OutcomeQuota     = "quota"
)

// ResolutionLookup represents a resolution count by outcome and provider.
type ResolutionLookup struct {
	Outcome    string
	Provider   string
	Count      int64
	LastSeenAt time.Time
}
