package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatusCache mirrors job status fields so pollers can check progress
// without hitting Postgres.
type StatusCache interface {
	Set(ctx context.Context, jobID uuid.UUID, fields map[string]interface{}) error
	Get(ctx context.Context, jobID uuid.UUID) (map[string]string, error)
	Remove(ctx context.Context, jobID uuid.UUID) error
}

// StatusKey returns the Redis hash key holding a job's status fields.
func StatusKey(jobID uuid.UUID) string {
	return fmt.Sprintf("conversion:status:%s", jobID)
}

// RedisStatusCache keeps job status hashes in Redis. Entries expire after
// ttl so a hash never outlives the retention sweep that deletes its job;
// ttl <= 0 disables expiry.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{client: client, ttl: ttl}
}

func (c *RedisStatusCache) Set(ctx context.Context, jobID uuid.UUID, fields map[string]interface{}) error {
	key := StatusKey(jobID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisStatusCache) Get(ctx context.Context, jobID uuid.UUID) (map[string]string, error) {
	return c.client.HGetAll(ctx, StatusKey(jobID)).Result()
}

func (c *RedisStatusCache) Remove(ctx context.Context, jobID uuid.UUID) error {
	return c.client.Del(ctx, StatusKey(jobID)).Err()
}
