// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/feature/tours/usecase"
	"tours_backend/internal/platform/query"
)

// CachingTourRepository decorates a TourRepository with Redis caching for
// the aggregate reads (stats, monthly plan). It implements the decorator
// pattern, transparently adding caching without modifying the underlying
// repository. Every write path invalidates the cached aggregates.
type CachingTourRepository struct {
	inner     usecase.TourRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TourRepository = (*CachingTourRepository)(nil)

// NewCachingTourRepository decorates a TourRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "tours". A nil Redis client disables caching entirely.
func NewCachingTourRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TourRepository, namespace string) *CachingTourRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tours"
	}
	return &CachingTourRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingTourRepository) statsKey() string {
	return c.namespace + ":stats"
}

func (c *CachingTourRepository) planKey(year int) string {
	return fmt.Sprintf("%s:plan:%d", c.namespace, year)
}

// invalidate drops every cached aggregate. Best effort: a failing cache
// never fails the write that triggered it.
func (c *CachingTourRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, c.namespace+":*", 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// Stats retrieves the aggregate, checking cache first then falling back to
// the database.
func (c *CachingTourRepository) Stats(ctx context.Context) ([]usecase.DifficultyStats, error) {
	if c.rdb == nil {
		return c.inner.Stats(ctx)
	}

	key := c.statsKey()
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []usecase.DifficultyStats
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupted entry: drop it and recompute.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// MonthlyPlan retrieves a year's plan, cache first.
func (c *CachingTourRepository) MonthlyPlan(ctx context.Context, year int) ([]usecase.MonthlyDeparture, error) {
	if c.rdb == nil {
		return c.inner.MonthlyPlan(ctx, year)
	}

	key := c.planKey(year)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []usecase.MonthlyDeparture
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.MonthlyPlan(ctx, year)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Create passes through and invalidates cached aggregates.
func (c *CachingTourRepository) Create(ctx context.Context, t *entity.Tour) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Save passes through and invalidates cached aggregates.
func (c *CachingTourRepository) Save(ctx context.Context, t *entity.Tour) error {
	if err := c.inner.Save(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete passes through and invalidates cached aggregates.
func (c *CachingTourRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateRatingStats passes through and invalidates cached aggregates.
func (c *CachingTourRepository) UpdateRatingStats(ctx context.Context, tourID uint, avg float64, quantity int) error {
	if err := c.inner.UpdateRatingStats(ctx, tourID, avg, quantity); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID is a pass-through; single-row reads are cheap enough to skip
// caching and stay always fresh.
func (c *CachingTourRepository) FindByID(ctx context.Context, id uint) (*entity.Tour, error) {
	return c.inner.FindByID(ctx, id)
}

// List is a pass-through; the parameter space makes per-spec keys useless.
func (c *CachingTourRepository) List(ctx context.Context, spec *query.Spec) ([]entity.Tour, error) {
	return c.inner.List(ctx, spec)
}
