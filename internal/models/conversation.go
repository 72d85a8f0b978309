package models

import "time"

// Chat message roles
const (
	RoleUserMessage      = "user"
	RoleAssistantMessage = "assistant"
)

// PendingSuggestion is the "did you mean" candidate awaiting a yes/no reply.
type PendingSuggestion struct {
	Label        string `json:"label"`
	FAQID        int64  `json:"faq_id"`
	OriginalText string `json:"original_text"`
}

// Conversation is the per-session confirmation state of the chat widget.
type Conversation struct {
	ID                   string             `json:"id"`
	AwaitingConfirmation bool               `json:"awaiting_confirmation"`
	Pending              *PendingSuggestion `json:"pending,omitempty"`
	PendingSince         time.Time          `json:"pending_since,omitempty"`
}

// Await puts the conversation into the awaiting-confirmation state.
func (c *Conversation) Await(p PendingSuggestion, now time.Time) {
	c.AwaitingConfirmation = true
	c.Pending = &p
	c.PendingSince = now
}

// Clear drops any pending suggestion.
func (c *Conversation) Clear() {
	c.AwaitingConfirmation = false
	c.Pending = nil
	c.PendingSince = time.Time{}
}

// Expired reports whether a pending suggestion is older than timeout.
// A non-positive timeout never expires.
func (c *Conversation) Expired(now time.Time, timeout time.Duration) bool {
	if !c.AwaitingConfirmation || timeout <= 0 {
		return false
	}
	return now.Sub(c.PendingSince) > timeout
}

// ChatMessage is one assistant reply rendered by the chat widget.
type ChatMessage struct {
	ID       string    `json:"id"`
	Role     string    `json:"role"`
	Content  string    `json:"content"`
	Time     time.Time `json:"time"`
	Provider Provider  `json:"provider,omitempty"`
	UsedAI   bool      `json:"used_ai"`
	IsError  bool      `json:"is_error,omitempty"`
}

// ChatReply is the response to one chat turn.
type ChatReply struct {
	Message              ChatMessage `json:"message"`
	AwaitingConfirmation bool        `json:"awaiting_confirmation"`
	Suggestion           *Suggestion `json:"suggestion,omitempty"`
}
