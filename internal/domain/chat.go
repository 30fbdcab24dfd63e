package domain

import (
	"time"

	"github.com/google/uuid"
)

// Origin tells who wrote a chat message
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// ChatMessage is one entry of the chatbot transcript
type ChatMessage struct {
	ID        uuid.UUID
	Text      string
	Origin    Origin
	Timestamp time.Time
}

// NewChatMessage creates a message stamped at now
func NewChatMessage(text string, origin Origin, now time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Text:      text,
		Origin:    origin,
		Timestamp: now,
	}
}

// FromUser reports whether the message was typed by the user
func (m ChatMessage) FromUser() bool {
	return m.Origin == OriginUser
}
