package repository

import (
	"context"
	"sync"
	"time"

	"brandchat/internal/model"
	"brandchat/internal/pkg/id"
)

// MemoryStore keeps conversations in a process-wide map. Default backend;
// transcripts do not survive a restart and grow without bound.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*model.Conversation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*model.Conversation),
	}
}

// CreateOrGet resolves or mints a conversation id.
func (s *MemoryStore) CreateOrGet(_ context.Context, convID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if convID == "" {
		convID = id.New()
	}
	if _, ok := s.conversations[convID]; !ok {
		now := time.Now().UTC()
		s.conversations[convID] = &model.Conversation{
			ID:        convID,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return convID, nil
}

// Append adds a message to the end of the transcript.
func (s *MemoryStore) Append(_ context.Context, convID string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[convID]
	if !ok {
		return ErrNotFound
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// History returns a copy of the transcript in insertion order.
func (s *MemoryStore) History(_ context.Context, convID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[convID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.Message(nil), conv.Messages...), nil
}

// Delete removes the conversation. Unknown ids are a no-op.
func (s *MemoryStore) Delete(_ context.Context, convID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, convID)
	return nil
}
