package repository

import (
	"context"
	"errors"

	"brandchat/internal/model"
)

// ErrNotFound is returned when a conversation id is unknown to the store.
var ErrNotFound = errors.New("conversation not found")

// ConversationStore is the transcript store contract. All backends are
// append-only per conversation; Delete is idempotent and never reports an
// unknown id as an error.
type ConversationStore interface {
	// CreateOrGet resolves a conversation id. An empty id mints a fresh
	// UUID; a known id is returned as-is; an unknown non-empty id gets an
	// empty conversation created under it.
	CreateOrGet(ctx context.Context, id string) (string, error)

	// Append adds a message to the end of the transcript.
	// Returns ErrNotFound for unknown ids.
	Append(ctx context.Context, id string, msg model.Message) error

	// History returns the transcript in insertion order.
	// Returns ErrNotFound for unknown ids.
	History(ctx context.Context, id string) ([]model.Message, error)

	// Delete removes the conversation. Unknown ids are a no-op.
	Delete(ctx context.Context, id string) error
}
