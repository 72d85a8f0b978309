package ai

import (
	"fmt"
	"strings"
)

// InjectContext biases prompt towards the institution. A prompt that already
// names the institution is returned unchanged; one mentioning a focus word
// gets a "Regarding" prefix; anything else gets an "At" prefix.
func InjectContext(prompt, institution string, focus []string) string {
	if institution == "" {
		return prompt
	}
	lower := strings.ToLower(strings.TrimSpace(prompt))
	if strings.Contains(lower, strings.ToLower(institution)) {
		return prompt
	}
	for _, w := range focus {
		if w != "" && strings.Contains(lower, w) {
			return fmt.Sprintf("Regarding %s, %s", institution, prompt)
		}
	}
	return fmt.Sprintf("At %s, %s", institution, prompt)
}

// SystemInstruction describes the assistant to providers that accept one.
func SystemInstruction(institution, url string) string {
	var sb strings.Builder
	sb.WriteString("You are EduNex, an assistant chatbot for ")
	sb.WriteString(institution)
	if url != "" {
		sb.WriteString(" (")
		sb.WriteString(url)
		sb.WriteString(")")
	}
	sb.WriteString(".\n")
	fmt.Fprintf(&sb, "Always interpret the user's question as being about %s.\n", institution)
	fmt.Fprintf(&sb, "Focus your answers on %s courses, departments, fees, admissions, campus life, etc.\n", institution)
	sb.WriteString("If you are not sure about an exact fact (like current fees), say that clearly and suggest visiting ")
	sb.WriteString("the official website or contacting the college office for confirmation.")
	return sb.String()
}
