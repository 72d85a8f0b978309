package models

// Suggestion is a transient "did you mean" candidate derived from a query.
type Suggestion struct {
	Label string `json:"label"`
	FAQID int64  `json:"faq_id"`
}

// ResolutionKind identifies which variant of a Resolution is populated.
type ResolutionKind string

// Resolution kinds
const (
	KindSuggestions ResolutionKind = "suggestions"
	KindMatched     ResolutionKind = "matched"
	KindAI          ResolutionKind = "ai"
	KindError       ResolutionKind = "error"
)

// Resolution is the single outcome of resolving one query. Exactly one of
// Suggestions, Answer (matched or AI) or Error is meaningful, selected by Kind.
type Resolution struct {
	Kind        ResolutionKind `json:"kind"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
	Answer      string         `json:"answer,omitempty"`
	Provider    Provider       `json:"provider,omitempty"`
	Error       string         `json:"error,omitempty"`

	// Composite is set when a matched answer came from a "{topic}-{department}" lookup.
	Composite bool `json:"composite,omitempty"`

	// Blocked is set when the AI stage was refused by the usage gate.
	Blocked bool `json:"blocked,omitempty"`
}

// Suggested builds a suggestions resolution.
func Suggested(suggestions []Suggestion) Resolution {
	return Resolution{Kind: KindSuggestions, Suggestions: suggestions}
}

// Matched builds a matched-answer resolution.
func Matched(answer string) Resolution {
	return Resolution{Kind: KindMatched, Answer: answer}
}

// AIAnswered builds an AI-answer resolution.
func AIAnswered(text string, provider Provider) Resolution {
	return Resolution{Kind: KindAI, Answer: text, Provider: provider}
}

// Failed builds an error resolution carrying msg verbatim.
func Failed(msg string) Resolution {
	return Resolution{Kind: KindError, Error: msg}
}

// Top returns the first suggestion, which is the one shown to the user.
func (r Resolution) Top() (Suggestion, bool) {
	if r.Kind != KindSuggestions || len(r.Suggestions) == 0 {
		return Suggestion{}, false
	}
	return r.Suggestions[0], true
}

// Outcome maps the resolution to a metrics outcome label.
func (r Resolution) Outcome() string {
	switch r.Kind {
	case KindSuggestions:
		return OutcomeSuggested
	case KindMatched:
		if r.Composite {
			return OutcomeComposite
		}
		return OutcomeMatched
	case KindAI:
		return OutcomeAI
	case KindError:
		if r.Blocked {
			return OutcomeQuota
		}
		return OutcomeError
	default:
		return OutcomeError
	}
}
