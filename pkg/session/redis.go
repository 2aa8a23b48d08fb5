package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/observability"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "canvasnap:session:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore stores sessions as JSON strings that expire with the session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping redis at %s", cfg.Addr)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (sess *Session, err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "redis", "session", "get", time.Since(start), err) }()

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get session %s", id)
	}

	var out Session
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse session %s", id)
	}
	if out.IsExpired() {
		return nil, nil
	}
	return &out, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *Session) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "redis", "session", "put", time.Since(start), err) }()

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.client.Del(ctx, s.key(sess.ID)).Err()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "set session %s", sess.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "redis", "session", "delete", time.Since(start), err) }()

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete session %s", id)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
