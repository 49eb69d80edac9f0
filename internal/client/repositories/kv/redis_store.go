package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pairs as plain Redis strings under a common key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client. Keys are stored as prefix+key.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects to the server named by a redis:// URL and checks the
// connection.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, prefix), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (map[string][]byte, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		result[strings.TrimPrefix(keys[i], s.prefix)] = []byte(str)
	}
	return result, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

// WithinTx buffers the writes fn makes and applies them in a single
// MULTI/EXEC block once fn returns nil. Reads inside fn see the buffered
// writes. There is no isolation from concurrent writers.
func (s *RedisStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	tx := &redisTx{store: s, pending: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if !tx.cleared && len(tx.pending) == 0 {
		return nil
	}

	var stale []string
	if tx.cleared {
		var err error
		if stale, err = s.keys(ctx); err != nil {
			return err
		}
	}

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if len(stale) > 0 {
			p.Del(ctx, stale...)
		}
		for key, value := range tx.pending {
			if value == nil {
				p.Del(ctx, s.prefix+key)
				continue
			}
			p.Set(ctx, s.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis exec: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisTx is the Repository handed to WithinTx callbacks. A nil value in
// pending marks a deletion.
type redisTx struct {
	store   *RedisStore
	pending map[string][]byte
	cleared bool
}

func (t *redisTx) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := t.pending[key]; ok {
		return value, nil
	}
	if t.cleared {
		return nil, nil
	}
	return t.store.Get(ctx, key)
}

func (t *redisTx) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	t.pending[key] = value
	return nil
}

func (t *redisTx) Delete(_ context.Context, key string) error {
	t.pending[key] = nil
	return nil
}

func (t *redisTx) List(ctx context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte)
	if !t.cleared {
		stored, err := t.store.List(ctx)
		if err != nil {
			return nil, err
		}
		result = stored
	}
	for key, value := range t.pending {
		if value == nil {
			delete(result, key)
			continue
		}
		result[key] = value
	}
	return result, nil
}

func (t *redisTx) Clear(_ context.Context) error {
	t.cleared = true
	clear(t.pending)
	return nil
}
