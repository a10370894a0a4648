// Package redisstore keeps usage counters in Redis hashes.
package redisstore

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

const (
	keyPrefix    = "usage:"
	indexKey     = "usage:index"
	fieldSeconds = "seconds"
	fieldUpdated = "updatedAt"
)

// UsageRepository implements repository.UsageRepository on a Redis client.
type UsageRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

var _ repository.UsageRepository = (*UsageRepository)(nil)

func NewUsageRepository(client redis.UniversalClient) *UsageRepository {
	return &UsageRepository{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func usageKey(userID string) string {
	return keyPrefix + userID
}

func (r *UsageRepository) Increment(ctx context.Context, userID string, seconds float64) (*domain.Usage, error) {
	key := usageKey(userID)
	ts := r.now()

	var total *redis.FloatCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		total = pipe.HIncrByFloat(ctx, key, fieldSeconds, seconds)
		pipe.HSet(ctx, key, fieldUpdated, ts.Format(time.RFC3339Nano))
		pipe.SAdd(ctx, indexKey, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.Usage{ID: key, UserID: userID, Seconds: total.Val(), UpdatedAt: ts}, nil
}

func (r *UsageRepository) GetByUser(ctx context.Context, userID string) (*domain.Usage, error) {
	values, err := r.client.HGetAll(ctx, usageKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, repository.ErrNotFound
	}
	return decodeUsage(userID, values)
}

func (r *UsageRepository) List(ctx context.Context) ([]domain.Usage, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	usages := make([]domain.Usage, 0, len(ids))
	for _, id := range ids {
		u, err := r.GetByUser(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		usages = append(usages, *u)
	}
	return usages, nil
}

func decodeUsage(userID string, values map[string]string) (*domain.Usage, error) {
	seconds, err := strconv.ParseFloat(values[fieldSeconds], 64)
	if err != nil {
		return nil, err
	}
	u := &domain.Usage{ID: usageKey(userID), UserID: userID, Seconds: seconds}
	if raw, ok := values[fieldUpdated]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			u.UpdatedAt = ts
		}
	}
	return u, nil
}
