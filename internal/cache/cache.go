package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

type Store struct {
	rdb *redis.Client
}

func New(url string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Store{rdb: redis.NewClient(opt)}, nil
}

func NewFromClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// incrWindow bumps a counter and gives it a TTL in the same step. A counter
// found without a TTL gets one too.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Incr bumps a counter whose window starts at its first hit.
func (s *Store) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindow.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64()
}

// Limiter is a fixed-window counter: at most limit calls per key per window.
type Limiter struct {
	store  *Store
	limit  int
	window time.Duration
}

func NewLimiter(store *Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	n, err := l.store.Incr(ctx, "ratelimit:"+key, l.window)
	if err != nil {
		return false, err
	}
	return n <= int64(l.limit), nil
}
