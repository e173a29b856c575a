package treestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

const redisKeyPrefix = "kasubs:tree:"

// RedisStore keeps trees as Redis string values.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ports.TreeStore = (*RedisStore)(nil)

// NewRedisStore wraps an existing client. A zero ttl keeps entries forever.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// OpenRedis connects to redisURL and verifies the connection.
func OpenRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("treestore: invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("treestore: redis unreachable: %w", err)
	}
	return NewRedisStore(rdb, ttl), nil
}

// RedisKey returns the Redis key used for key.
func RedisKey(key model.TreeKey) string {
	return redisKeyPrefix + key.Locale + ":" + string(key.ContentType)
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Load reads the tree stored for key.
func (s *RedisStore) Load(ctx context.Context, key model.TreeKey) (model.Node, error) {
	data, err := s.rdb.Get(ctx, RedisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("treestore: redis get %s: %w", key, err)
	}
	return Decode(data)
}

// Save replaces the tree stored for key.
func (s *RedisStore) Save(ctx context.Context, key model.TreeKey, tree model.Node) error {
	data, err := Encode(tree)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, RedisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("treestore: redis set %s: %w", key, err)
	}
	return nil
}
