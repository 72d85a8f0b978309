package chat

import "strings"

// Answer is the reading of a reply to "did you mean".
type Answer int

// Answers
const (
	AnswerUnclear Answer = iota
	AnswerYes
	AnswerNo
)

var (
	yesWords = map[string]bool{"yes": true, "y": true, "yeah": true, "yep": true}
	noWords  = map[string]bool{"no": true, "n": true, "nope": true}
)

// ParseAnswer reads text as yes or no. Trailing punctuation is ignored.
func ParseAnswer(text string) Answer {
	w := strings.ToLower(strings.TrimSpace(text))
	w = strings.TrimRight(w, ".!? ")
	switch {
	case yesWords[w]:
		return AnswerYes
	case noWords[w]:
		return AnswerNo
	default:
		return AnswerUnclear
	}
}
