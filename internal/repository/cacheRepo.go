package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheMessageRepo is a cache-aside decorator for MessageRepository backed
// by Redis.
type CacheMessageRepo struct {
	underlying MessageRepository
	rdb        *redis.Client
	prefix     string
	ttl        time.Duration
}

func NewCacheMessageRepo(under MessageRepository, rdb *redis.Client, prefix string, ttl time.Duration) *CacheMessageRepo {
	return &CacheMessageRepo{underlying: under, rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *CacheMessageRepo) cacheKeyByID(id string) string {
	return fmt.Sprintf("%smessage:id:%s", c.prefix, id)
}

func (c *CacheMessageRepo) cacheKeyByThread(threadID string) string {
	return fmt.Sprintf("%sthread:%s", c.prefix, threadID)
}

// Save delegates to underlying and invalidates the affected keys.
func (c *CacheMessageRepo) Save(ctx context.Context, msg *MessageEntity) error {
	if err := c.underlying.Save(ctx, msg); err != nil {
		return err
	}
	// Best-effort invalidation; ignore errors
	_ = c.rdb.Del(ctx, c.cacheKeyByID(msg.ID), c.cacheKeyByThread(msg.ThreadID)).Err()
	return nil
}

// GetByID returns entity from cache first; falls back to DB and populates cache.
func (c *CacheMessageRepo) GetByID(ctx context.Context, id string) (*MessageEntity, error) {
	key := c.cacheKeyByID(id)
	if c.rdb != nil {
		if bs, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) > 0 {
			var m MessageEntity
			if json.Unmarshal(bs, &m) == nil {
				return &m, nil
			}
		}
	}
	m, err := c.underlying.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil && m != nil {
		if bs, err := json.Marshal(m); err == nil {
			_ = c.rdb.Set(ctx, key, bs, c.ttl).Err()
		}
	}
	return m, nil
}

// GetAll is not cached (pagination + freshness). Delegates to underlying.
func (c *CacheMessageRepo) GetAll(ctx context.Context, limit, offset int) ([]*MessageEntity, error) {
	return c.underlying.GetAll(ctx, limit, offset)
}

// GetByThread caches the whole thread slice; the thread key is invalidated
// whenever any of its messages is saved.
func (c *CacheMessageRepo) GetByThread(ctx context.Context, threadID string) ([]*MessageEntity, error) {
	key := c.cacheKeyByThread(threadID)
	if c.rdb != nil {
		if bs, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) > 0 {
			var msgs []*MessageEntity
			if json.Unmarshal(bs, &msgs) == nil {
				return msgs, nil
			}
		}
	}
	msgs, err := c.underlying.GetByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil && len(msgs) > 0 {
		if bs, err := json.Marshal(msgs); err == nil {
			_ = c.rdb.Set(ctx, key, bs, c.ttl).Err()
		}
	}
	return msgs, nil
}
