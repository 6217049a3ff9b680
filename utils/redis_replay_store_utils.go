package utils

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisReplayStore keeps recently produced webhook responses keyed by
// (endpoint, idempotency key). It is only a cache in front of the webhook
// log table, a miss must always fall back to the database.
type RedisReplayStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
	ttl       time.Duration
}

const (
	replayKeyPrefix = "idem"
)

func GetRedisReplayStore(ctx context.Context, ttl time.Duration) (*RedisReplayStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return NewRedisReplayStore(redisClient, ttl), nil
}

func NewRedisReplayStore(client *redis.Client, ttl time.Duration) *RedisReplayStore {
	return &RedisReplayStore{
		inner:     client,
		keyParser: RedisKeyParser{delimiter: "__"},
		ttl:       ttl,
	}
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return id != "" && !strings.Contains(id, r.delimiter)
}

// EncodeReplayKey builds "idem__<endpoint>__<key>". Keys containing the
// delimiter are rejected so that two pairs never collide.
func (r RedisKeyParser) EncodeReplayKey(endpoint string, key string) (string, error) {
	if !r.ValidateId(endpoint) || !r.ValidateId(key) {
		return "", fmt.Errorf("invalid endpoint or idempotency key")
	}
	return strings.Join([]string{replayKeyPrefix, endpoint, key}, r.delimiter), nil
}

func (r RedisKeyParser) DecodeReplayKey(encoded string) (string, string, error) {
	splits := strings.Split(encoded, r.delimiter)
	if len(splits) != 3 || splits[0] != replayKeyPrefix {
		return "", "", fmt.Errorf("invalid key: %s", encoded)
	}
	return splits[1], splits[2], nil
}

// Get returns the cached response body, ok is false on a miss or when the key
// can't be encoded.
func (r *RedisReplayStore) Get(ctx context.Context, endpoint string, key string) ([]byte, bool, error) {
	k, err := r.keyParser.EncodeReplayKey(endpoint, key)
	if err != nil {
		return nil, false, nil
	}
	res, err := r.inner.Get(ctx, k).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (r *RedisReplayStore) Set(ctx context.Context, endpoint string, key string, body []byte) error {
	k, err := r.keyParser.EncodeReplayKey(endpoint, key)
	if err != nil {
		return err
	}
	return r.inner.Set(ctx, k, body, r.ttl).Err()
}
