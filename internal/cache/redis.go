package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/step"
)

const DefaultPrefix = "algoviz:seq:"

// Redis shares sequences between service replicas. Values are stored as
// JSON. Redis failures degrade to computing without caching.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

type RedisOption func(*Redis)

// WithTTL sets the expiration of stored sequences. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

func WithLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRedis connects to addr.
func NewRedis(addr string, opts ...RedisOption) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: DefaultPrefix,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.Component(r.logger, "cache")
	return r
}

func (r *Redis) key(key string) string { return r.prefix + hash(key) }

// GetOrCompute returns the stored sequence for key or runs fn and stores
// its result. Errors from fn are never stored.
func (r *Redis) GetOrCompute(ctx context.Context, key string, fn func() (step.Sequence, error)) (step.Sequence, error) {
	k := r.key(key)

	if seq, ok := r.load(ctx, k); ok {
		return seq, nil
	}

	v, err, _ := r.group.Do(k, func() (any, error) {
		seq, err := safeCompute(fn)
		if err != nil {
			return nil, err
		}
		r.store(ctx, k, seq)
		return seq, nil
	})
	if err != nil {
		return step.Sequence{}, err
	}
	return v.(step.Sequence), nil
}

func (r *Redis) load(ctx context.Context, k string) (step.Sequence, bool) {
	raw, err := r.client.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			r.logger.Warn("cache_get_failed", "key", k, "error", err)
		}
		return step.Sequence{}, false
	}

	var seq step.Sequence
	if err := json.Unmarshal(raw, &seq); err != nil {
		r.logger.Warn("cache_decode_failed", "key", k, "error", err)
		return step.Sequence{}, false
	}
	return seq, true
}

func (r *Redis) store(ctx context.Context, k string, seq step.Sequence) {
	data, err := json.Marshal(seq)
	if err != nil {
		r.logger.Warn("cache_encode_failed", "key", k, "error", err)
		return
	}
	if err := r.client.Set(ctx, k, data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache_set_failed", "key", k, "error", err)
	}
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
