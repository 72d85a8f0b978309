package resolver

import (
	"fmt"
	"strings"
)

// Vocabulary is the fixed rule table used by the composite fallback.
type Vocabulary struct {
	Departments []string
	Topics      []string
}

// DefaultVocabulary returns the department codes and topics of Nilgiri College.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Departments: []string{"bca", "bcom", "bba", "bsc", "ba", "mca", "msc"},
		Topics:      []string{"fees", "syllabus", "admission", "curriculum"},
	}
}

// CompositeKey builds the "{topic}-{department}" lookup key for the normalized
// query q. Each list is scanned in its configured order and the first entry
// contained in q is taken, so "bca" shadows "ba" for a query about BCA.
func (v Vocabulary) CompositeKey(q string) (string, bool) {
	dept := firstContained(q, v.Departments)
	topic := firstContained(q, v.Topics)
	if dept == "" || topic == "" {
		return "", false
	}
	return fmt.Sprintf("%s-%s", topic, dept), true
}

func firstContained(q string, words []string) string {
	for _, w := range words {
		if w != "" && strings.Contains(q, w) {
			return w
		}
	}
	return ""
}
