// ABOUTME: This file defines domain models for chat sessions and messages
// ABOUTME: Message delivery status makes the optimistic-send outcome explicit

package models

// MessageStatus tracks the delivery state of an optimistically shown message.
type MessageStatus string

const (
	// StatusPending marks a message shown to the user before the backend
	// has acknowledged it.
	StatusPending MessageStatus = "pending"
	// StatusDelivered marks a message the backend has accepted.
	StatusDelivered MessageStatus = "delivered"
	// StatusFailed marks a message whose send failed. The message stays
	// visible; it is never rolled back.
	StatusFailed MessageStatus = "failed"
)

// ChatMessage is a single transcript entry. LocalID identifies an
// optimistically appended message within the local transcript; it never
// travels over the wire.
type ChatMessage struct {
	Role    string        `json:"role"`
	Content string        `json:"content"`
	Status  MessageStatus `json:"status,omitempty"`
	LocalID string        `json:"-"`
}

// ChatSession summarizes a stored conversation.
type ChatSession struct {
	ID          int64  `json:"id"`
	ChatSummary string `json:"chat_summary"`
}

// ChatTranscript is the response shape of GET /chat/sessions/{id}/messages.
type ChatTranscript struct {
	Messages []ChatMessage `json:"messages"`
}

// BotReply is the response shape of POST /chat/sessions/{id}/messages.
type BotReply struct {
	BotResponse string `json:"bot_response"`
}
