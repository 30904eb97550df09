package repository

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewStore selects a conversation store backend by name. The mongo and
// redis handles may be nil when the corresponding backend is not selected.
func NewStore(backend string, db *mongo.Database, rdb *redis.Client) (ConversationStore, error) {
	switch backend {
	case "memory", "":
		return NewMemoryStore(), nil
	case "mongo":
		if db == nil {
			return nil, fmt.Errorf("mongo storage backend selected but no database connection")
		}
		return NewMongoStore(db), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis storage backend selected but no redis connection")
		}
		return NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
