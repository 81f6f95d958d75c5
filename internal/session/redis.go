package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenverify/internal/common/database"
	"greenverify/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps session records in Redis with a TTL, so the store stays
// bounded and predictions survive process restarts.
type RedisStore struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *database.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, rec *models.SessionRecord) (string, error) {
	id := uuid.NewString()
	rec.ID = id
	rec.CreatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal session record: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl); err != nil {
		return "", fmt.Errorf("store session record: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.SessionRecord, error) {
	data, err := s.client.Get(ctx, keyPrefix+id)
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}

	var rec models.SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
