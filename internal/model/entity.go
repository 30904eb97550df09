package model

import (
	"time"
)

// Message roles. The system role is never persisted; the brand prompt is
// spliced into the upstream request at call time.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is an ordered transcript keyed by an opaque UUID string.
type Conversation struct {
	ID        string    `bson:"_id" json:"id"`
	Messages  []Message `bson:"messages" json:"messages"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Message is a single transcript entry. Immutable once appended.
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// NewMessage builds a message stamped with the current UTC time.
func NewMessage(role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
