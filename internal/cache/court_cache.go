package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/dto"
)

const (
	courtKeyPrefix   = "courts:item:"
	courtListAll     = "courts:list:all"
	courtListActive  = "courts:list:active"
	defaultCourtsTTL = 10 * time.Minute
)

// CourtCache is a read-through cache for the court catalog. Redis failures
// are logged and reported as misses.
type CourtCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCourtCache(rdb *redis.Client, ttl time.Duration) *CourtCache {
	if ttl <= 0 {
		ttl = defaultCourtsTTL
	}
	return &CourtCache{rdb: rdb, ttl: ttl}
}

func (c *CourtCache) GetCourt(ctx context.Context, id uuid.UUID) (*dto.Court, bool) {
	var court dto.Court
	if !c.get(ctx, courtKeyPrefix+id.String(), &court) {
		return nil, false
	}
	return &court, true
}

func (c *CourtCache) SetCourt(ctx context.Context, court dto.Court) {
	c.set(ctx, courtKeyPrefix+court.ID.String(), court)
}

func (c *CourtCache) GetList(ctx context.Context, activeOnly bool) ([]dto.Court, bool) {
	var list []dto.Court
	if !c.get(ctx, listKey(activeOnly), &list) {
		return nil, false
	}
	return list, true
}

func (c *CourtCache) SetList(ctx context.Context, activeOnly bool, list []dto.Court) {
	c.set(ctx, listKey(activeOnly), list)
}

// Invalidate drops the court entry and both list entries.
func (c *CourtCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, courtKeyPrefix+id.String(), courtListAll, courtListActive).Err(); err != nil {
		log.Printf("court cache invalidate %s: %v", id, err)
	}
}

func (c *CourtCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("court cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("court cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *CourtCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("court cache encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("court cache set %s: %v", key, err)
	}
}

func listKey(activeOnly bool) string {
	if activeOnly {
		return courtListActive
	}
	return courtListAll
}
