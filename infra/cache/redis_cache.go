package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/finledger/pkg/cache"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache implements RateTableCache using Redis. The whole table is
// stored as one JSON value so a reader never sees a mix of two refreshes.
type RedisRateCache struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

var _ cache.RateTableCache = (*RedisRateCache)(nil)

// NewRedisRateCache creates a RedisRateCache storing the table under prefix+key.
func NewRedisRateCache(client redis.UniversalClient, prefix, key string, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{client: client, key: prefix + key, logger: logger.With("service", "redis-rate-cache")}
}

// NewRedisClient builds a client from a redis:// URL and timeouts.
func NewRedisClient(url string, poolSize int, dial, read, write time.Duration) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = poolSize
	opt.DialTimeout = dial
	opt.ReadTimeout = read
	opt.WriteTimeout = write
	return redis.NewClient(opt), nil
}

// Load returns the stored snapshot; a missing key is a miss, not an error.
func (r *RedisRateCache) Load(ctx context.Context) (cache.RateSnapshot, bool, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", r.key)
		return cache.RateSnapshot{}, false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", r.key, "error", err)
		return cache.RateSnapshot{}, false, err
	}
	var snap cache.RateSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", r.key, "error", err)
		return cache.RateSnapshot{}, false, err
	}
	r.logger.Debug("Redis cache hit", "key", r.key, "rates", len(snap.Rates))
	return snap, true, nil
}

// Save stores snap without expiry; the next refresh overwrites it.
func (r *RedisRateCache) Save(ctx context.Context, snap cache.RateSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", r.key, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", r.key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", r.key, "rates", len(snap.Rates))
	return nil
}
