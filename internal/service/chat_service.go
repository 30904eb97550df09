package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"brandchat/internal/model"
	"brandchat/internal/repository"
)

// ErrUpstream marks a failed upstream completion so the handler can answer
// with 503 instead of a generic 500.
var ErrUpstream = errors.New("upstream AI provider unavailable")

// Completer generates a reply for a transcript. Implemented by ai.Client.
type Completer interface {
	Complete(ctx context.Context, history []model.Message) (string, error)
}

// ChatService orchestrates the store and the upstream client for one chat
// turn: resolve id, append user message, complete, append assistant reply.
type ChatService struct {
	completer Completer
	store     repository.ConversationStore
}

// NewChatService creates the chat service.
func NewChatService(completer Completer, store repository.ConversationStore) *ChatService {
	return &ChatService{
		completer: completer,
		store:     store,
	}
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Reply          string
	ConversationID string
}

// Chat runs one request/response turn. The user message stays appended even
// when the upstream call fails; that asymmetry matches the public contract
// and is deliberately not rolled back.
func (s *ChatService) Chat(ctx context.Context, convID, message string) (*ChatResult, error) {
	convID, err := s.store.CreateOrGet(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}

	logger := log.With().Str("conversation_id", convID).Logger()

	if err := s.store.Append(ctx, convID, model.NewMessage(model.RoleUser, message)); err != nil {
		return nil, fmt.Errorf("failed to append user message: %w", err)
	}

	history, err := s.store.History(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	reply, err := s.completer.Complete(ctx, history)
	if err != nil {
		logger.Error().Err(err).Msg("AI completion failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if err := s.store.Append(ctx, convID, model.NewMessage(model.RoleAssistant, reply)); err != nil {
		logger.Warn().Err(err).Msg("failed to save assistant message")
	}

	logger.Info().
		Int("history_len", len(history)).
		Int("reply_len", len(reply)).
		Msg("chat completed")

	return &ChatResult{
		Reply:          reply,
		ConversationID: convID,
	}, nil
}

// DeleteConversation removes a conversation. Deleting an unknown id
// succeeds; the endpoint reports success regardless of prior existence.
func (s *ChatService) DeleteConversation(ctx context.Context, convID string) error {
	return s.store.Delete(ctx, convID)
}
