package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

const dealCacheKeyPrefix = "deal:v1:"

// Lookup is the read side of a deal store.
type Lookup interface {
	FindByID(ctx context.Context, dealID id.DealID) (*models.Deal, error)
}

// RedisCache is a read-through cache in front of a Lookup. Redis errors are
// logged and the backing store answers instead. Not-found results are not
// cached.
type RedisCache struct {
	client *redis.Client
	next   Lookup
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps next. A non-positive ttl defaults to one minute.
func NewRedisCache(client *redis.Client, next Lookup, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RedisCache{client: client, next: next, ttl: ttl, logger: logger}
}

func (c *RedisCache) FindByID(ctx context.Context, dealID id.DealID) (*models.Deal, error) {
	key := dealCacheKeyPrefix + dealID.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var deal models.Deal
		if jsonErr := json.Unmarshal(raw, &deal); jsonErr == nil {
			return &deal, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cached deal", "deal_id", dealID.String())
	case errors.Is(err, redis.Nil):
		c.logger.DebugContext(ctx, "deal cache miss", "deal_id", dealID.String())
	default:
		c.logger.WarnContext(ctx, "deal cache read failed", "deal_id", dealID.String(), "error", err)
		return c.next.FindByID(ctx, dealID)
	}

	deal, err := c.next.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if encoded, jsonErr := json.Marshal(deal); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "deal cache write failed", "deal_id", dealID.String(), "error", setErr)
		}
	}
	return deal, nil
}

// Invalidate drops a cached deal, e.g. after the owning service edits it.
func (c *RedisCache) Invalidate(ctx context.Context, dealID id.DealID) error {
	return c.client.Del(ctx, dealCacheKeyPrefix+dealID.String()).Err()
}
