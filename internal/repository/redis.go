package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"brandchat/internal/model"
	"brandchat/internal/pkg/id"
)

const conversationKeyPrefix = "conv:"

// RedisStore keeps each transcript as a list of JSON-encoded messages at
// conv:<id>. A conversation with no messages yet is represented by a
// sentinel key so CreateOrGet/History can tell empty from unknown.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func conversationKey(convID string) string {
	return conversationKeyPrefix + convID
}

func conversationMetaKey(convID string) string {
	return conversationKeyPrefix + convID + ":meta"
}

// CreateOrGet resolves or mints a conversation id.
func (s *RedisStore) CreateOrGet(ctx context.Context, convID string) (string, error) {
	if convID == "" {
		convID = id.New()
	}

	// SETNX keeps the original created_at on repeat calls.
	if err := s.client.SetNX(ctx, conversationMetaKey(convID), "1", 0).Err(); err != nil {
		return "", err
	}
	return convID, nil
}

// Append pushes a JSON-encoded message onto the transcript list.
func (s *RedisStore) Append(ctx context.Context, convID string, msg model.Message) error {
	exists, err := s.client.Exists(ctx, conversationMetaKey(convID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, conversationKey(convID), data).Err()
}

// History returns the transcript in insertion order.
func (s *RedisStore) History(ctx context.Context, convID string) ([]model.Message, error) {
	exists, err := s.client.Exists(ctx, conversationMetaKey(convID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	items, err := s.client.LRange(ctx, conversationKey(convID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(items))
	for _, item := range items {
		var msg model.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Delete removes the transcript and its sentinel. Unknown ids are a no-op.
func (s *RedisStore) Delete(ctx context.Context, convID string) error {
	return s.client.Del(ctx, conversationKey(convID), conversationMetaKey(convID)).Err()
}
