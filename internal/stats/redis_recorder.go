package stats

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder persists counters in Redis so stats survive restarts and are
// shared across replicas. Keys: "<prefix>visits", "<prefix>views",
// "<prefix>platform" (hash of platform -> count).
type RedisRecorder struct {
	client *redis.Client
	prefix string
}

// NewRedisRecorder creates a Redis-backed recorder. Prefix may be empty.
func NewRedisRecorder(client *redis.Client, prefix string) *RedisRecorder {
	if prefix == "" {
		prefix = "stats:"
	}
	return &RedisRecorder{client: client, prefix: prefix}
}

func (r *RedisRecorder) RecordVisit(ctx context.Context) error {
	return r.client.Incr(ctx, r.prefix+"visits").Err()
}

func (r *RedisRecorder) RecordProfileView(ctx context.Context, platform string) error {
	if err := r.client.Incr(ctx, r.prefix+"views").Err(); err != nil {
		return err
	}
	if platform == "" {
		return nil
	}
	return r.client.HIncrBy(ctx, r.prefix+"platform", platform, 1).Err()
}

func (r *RedisRecorder) Snapshot(ctx context.Context) (*Stats, error) {
	visits, err := r.getInt(ctx, r.prefix+"visits")
	if err != nil {
		return nil, err
	}
	views, err := r.getInt(ctx, r.prefix+"views")
	if err != nil {
		return nil, err
	}
	raw, err := r.client.HGetAll(ctx, r.prefix+"platform").Result()
	if err != nil {
		return nil, err
	}
	platforms := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, _ := strconv.ParseInt(v, 10, 64)
		platforms[k] = n
	}
	return &Stats{Visits: visits, ProfileViews: views, Platforms: platforms}, nil
}

func (r *RedisRecorder) getInt(ctx context.Context, key string) (int64, error) {
	v, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}
