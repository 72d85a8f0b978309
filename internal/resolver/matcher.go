package resolver

import (
	"strings"

	"edunex/internal/models"
)

// Normalize lower-cases and trims s for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchResult is the outcome of matching one query against the FAQ table.
type MatchResult struct {
	// Suggestions holds every phrase contained in the query, in row order
	// and then phrase order within a row.
	Suggestions []models.Suggestion

	// Direct is the row whose phrase equals the query exactly, if any.
	Direct *models.FAQ
}

// Match runs the keyword matcher over faqs for the normalized query q.
//
// When several rows match q exactly the row with the lowest id wins, so the
// result does not depend on the order the store returned the rows in.
func Match(faqs []models.FAQ, q string) MatchResult {
	var res MatchResult
	if q == "" {
		return res
	}

	for i := range faqs {
		row := &faqs[i]
		for _, phrase := range row.Phrases() {
			p := Normalize(phrase)
			if p == "" || !strings.Contains(q, p) {
				continue
			}
			res.Suggestions = append(res.Suggestions, models.Suggestion{Label: phrase, FAQID: row.ID})
			if q == p && (res.Direct == nil || row.ID < res.Direct.ID) {
				res.Direct = row
			}
		}
	}
	return res
}
