package store

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with a Redis database. This is the deployment
// default.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redisURL (redis://host:port or
// redis://host:port/db) and pings it once.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("Connected to Redis at %s", redisURL)
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return val, err
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([][]byte, len(keys))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[i] = []byte(str)
		}
	}
	return out, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	// Expiry is handled by the cleanup pass, not by Redis TTLs.
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) SetMany(ctx context.Context, pairs []KV) error {
	if len(pairs) == 0 {
		return nil
	}

	args := make([]interface{}, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p.Key, p.Value)
	}
	return s.client.MSet(ctx, args...).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Keys streams the keyspace with SCAN so a large cache is never pulled over in
// one reply.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *RedisStore) Entries(ctx context.Context) ([]KV, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	vals, err := s.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	entries := make([]KV, 0, len(keys))
	for i, key := range keys {
		if vals[i] == nil {
			continue
		}
		entries = append(entries, KV{Key: key, Value: vals[i]})
	}
	return entries, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
