package validation

import (
	"net/mail"
	"net/url"
	"strings"

	"edunex/internal/models"
)

// Field limits
const (
	MaxKeywordLength  = 200
	MaxKeywords       = 50
	MaxAnswerLength   = 10000
	MinPasswordLength = 8
)

// FAQInput is the admin form for creating or editing an FAQ.
type FAQInput struct {
	Keyword         string   `json:"keyword"`
	Keywords        []string `json:"keywords"`
	DefaultQuestion string   `json:"default_question"`
	Answer          string   `json:"answer"`
}

// NormalizeFAQ validates in and returns the row to store. The default
// question is stored as one more keyword so the chat can match it exactly.
// Blank and duplicate phrases are dropped. A row needs an answer and at
// least one phrase, otherwise it could never be matched.
func NormalizeFAQ(in FAQInput) (*models.FAQ, string) {
	answer := strings.TrimSpace(in.Answer)
	if answer == "" {
		return nil, "Answer cannot be empty."
	}
	if len(answer) > MaxAnswerLength {
		return nil, "Answer is too long"
	}

	primary := strings.TrimSpace(in.Keyword)
	if len(primary) > MaxKeywordLength {
		return nil, "Main keyword is too long"
	}

	seen := map[string]bool{}
	if primary != "" {
		seen[strings.ToLower(primary)] = true
	}
	var keywords []string
	for _, k := range append(append([]string{}, in.Keywords...), in.DefaultQuestion) {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		if len(k) > MaxKeywordLength {
			return nil, "Keyword phrases must be at most 200 characters"
		}
		seen[strings.ToLower(k)] = true
		keywords = append(keywords, k)
	}
	if len(keywords) > MaxKeywords {
		return nil, "Too many keyword phrases"
	}

	faq := &models.FAQ{Keywords: keywords, Answer: answer}
	if primary != "" {
		faq.PrimaryKeyword = &primary
	}
	if !faq.IsMatchable() {
		return nil, "Please enter at least one main keyword."
	}
	if faq.Keywords == nil {
		faq.Keywords = []string{}
	}
	return faq, ""
}

// ValidateEmail checks that email is a bare address.
func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false, "Invalid email address"
	}
	return true, ""
}

// ValidatePassword checks the minimum password strength for admin accounts.
func ValidatePassword(password string) (bool, string) {
	if strings.TrimSpace(password) == "" {
		return false, "Password is required"
	}
	if len(password) < MinPasswordLength {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
