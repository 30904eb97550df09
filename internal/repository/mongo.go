package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brandchat/internal/model"
	"brandchat/internal/pkg/id"
)

// MongoStore persists conversations in a single collection, one document per
// conversation. Ids are UUID strings so they stay backend-independent.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a store over the conversations collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("conversations"),
	}
}

// CreateOrGet resolves or mints a conversation id. Uses an upsert so a
// known id is left untouched.
func (s *MongoStore) CreateOrGet(ctx context.Context, convID string) (string, error) {
	if convID == "" {
		convID = id.New()
	}

	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"messages":   []model.Message{},
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateByID(ctx, convID, update, opts); err != nil {
		return "", err
	}
	return convID, nil
}

// Append pushes a message onto the transcript.
func (s *MongoStore) Append(ctx context.Context, convID string, msg model.Message) error {
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := s.collection.UpdateByID(ctx, convID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// History returns the transcript in insertion order.
func (s *MongoStore) History(ctx context.Context, convID string) ([]model.Message, error) {
	var conv model.Conversation
	err := s.collection.FindOne(ctx, bson.M{"_id": convID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return conv.Messages, nil
}

// Delete removes the conversation document. Unknown ids are a no-op.
func (s *MongoStore) Delete(ctx context.Context, convID string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": convID})
	return err
}
