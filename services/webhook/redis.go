package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const redisKeyPrefix = "webhook:session:"

type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

// NewRedisClient parses the URL and fails unless the server answers a ping.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Redis URL")
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	return client, nil
}

func (b *RedisBackend) key(sessionID string) string {
	return fmt.Sprintf("%s%s", redisKeyPrefix, sessionID)
}

func (b *RedisBackend) Get(ctx context.Context, sessionID string) (string, bool, error) {
	url, err := b.client.Get(ctx, b.key(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, sessionID, url string) error {
	return b.client.Set(ctx, b.key(sessionID), url, b.ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string) error {
	return b.client.Del(ctx, b.key(sessionID)).Err()
}
