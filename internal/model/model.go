package model

import (
	"time"

	"scholar-ai/backend/internal/modes"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation stores metadata about one research session.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Mode      modes.ID  `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroundingURL is a single web citation returned by the engine when the
// search tool is active.
type GroundingURL struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Message is a single turn in a conversation. Messages are immutable once
// appended; a conversation only ever grows, or is cleared as a whole.
type Message struct {
	ID            string         `json:"id"`
	Role          Role           `json:"role"`
	Content       string         `json:"content"`
	Mode          modes.ID       `json:"mode"`
	Timestamp     time.Time      `json:"timestamp"`
	GroundingURLs []GroundingURL `json:"grounding_urls,omitempty"`
	IsHumanized   bool           `json:"is_humanized,omitempty"`
}

// FullConversation includes the conversation metadata and all its messages.
type FullConversation struct {
	Conversation
	Messages []Message `json:"messages"`
}

// AttachmentPayload carries one base64-encoded binary for a single outgoing
// engine request. Data never includes a data-URL prefix. Payloads are
// transient: they are not retained in conversation state.
type AttachmentPayload struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}
