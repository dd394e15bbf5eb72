package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medidispatch/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CandidateCache keeps the per-category candidate sets hot so a dispatch
// does not hit Postgres on every incident. A miss returns (nil, nil).
type CandidateCache struct {
	client *goredis.Client
	prefix string
}

func NewCandidateCache(r *Redis) *CandidateCache {
	return &CandidateCache{
		client: r.Client,
		prefix: "candidates:category:",
	}
}

func (c *CandidateCache) key(category domain.Category) string {
	return c.prefix + string(category)
}

func (c *CandidateCache) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Candidate, error) {
	data, err := c.client.Get(ctx, c.key(category)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (c *CandidateCache) SetByCategory(ctx context.Context, category domain.Category, candidates []domain.Candidate, ttl time.Duration) error {
	b, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(category), b, ttl).Err()
}

func (c *CandidateCache) Invalidate(ctx context.Context, category domain.Category) error {
	return c.client.Del(ctx, c.key(category)).Err()
}
