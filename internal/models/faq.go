package models

import (
	"strings"
	"time"
)

// FAQ is an admin-authored keyword-to-answer mapping.
// PrimaryKeyword is stored in the faqs.keyword column and is also the
// target of composite "{topic}-{department}" lookups.
type FAQ struct {
	ID             int64     `json:"id"`
	PrimaryKeyword *string   `json:"keyword"`
	Keywords       []string  `json:"keywords"`
	Answer         string    `json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Phrases returns the candidate match phrases of the row in their original
// casing: the primary keyword first, then the extra keywords in order.
func (f *FAQ) Phrases() []string {
	phrases := make([]string, 0, len(f.Keywords)+1)
	if f.PrimaryKeyword != nil && *f.PrimaryKeyword != "" {
		phrases = append(phrases, *f.PrimaryKeyword)
	}
	phrases = append(phrases, f.Keywords...)
	return phrases
}

// IsMatchable reports whether the row has at least one non-blank phrase.
// Rows without one are permitted by the schema but can never match a query.
func (f *FAQ) IsMatchable() bool {
	for _, p := range f.Phrases() {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}

// KeywordLabel returns the primary keyword for display, or a placeholder.
func (f *FAQ) KeywordLabel() string {
	if f.PrimaryKeyword == nil || *f.PrimaryKeyword == "" {
		return "(no keyword)"
	}
	return *f.PrimaryKeyword
}
