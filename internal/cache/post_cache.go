package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/domain"
)

const (
	postHandlePrefix = "codepulse:post:handle:"
	postListKey      = "codepulse:posts:list"
)

// PostCache caches the public reading view in Redis. Misses and Redis
// failures both fall through to the database.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostCache builds a cache with the given entry TTL.
func NewPostCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PostCache{client: client, ttl: ttl, logger: logger}
}

// GetByHandle returns the cached post for a URL handle, nil on miss.
func (c *PostCache) GetByHandle(ctx context.Context, handle string) *domain.BlogPost {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, postHandlePrefix+handle).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("post cache read failed", zap.Error(err))
		}
		return nil
	}
	var post domain.BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil
	}
	return &post
}

// SetByHandle stores a post under its URL handle.
func (c *PostCache) SetByHandle(ctx context.Context, post *domain.BlogPost) {
	if c == nil || c.client == nil || post == nil {
		return
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postHandlePrefix+post.URLHandle, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("post cache write failed", zap.Error(err))
	}
}

// GetList returns the cached post list, nil on miss.
func (c *PostCache) GetList(ctx context.Context) []domain.BlogPost {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, postListKey).Bytes()
	if err != nil {
		return nil
	}
	var posts []domain.BlogPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil
	}
	return posts
}

// SetList stores the post list.
func (c *PostCache) SetList(ctx context.Context, posts []domain.BlogPost) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("post cache write failed", zap.Error(err))
	}
}

// InvalidatePost drops the cached entry for a URL handle and the list.
func (c *PostCache) InvalidatePost(ctx context.Context, handle string) {
	if c == nil || c.client == nil {
		return
	}
	keys := []string{postListKey}
	if handle != "" {
		keys = append(keys, postHandlePrefix+handle)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("post cache invalidation failed", zap.Error(err))
	}
}

// InvalidateAll drops the list cache. Category changes affect rendered
// posts in unknown ways, so the per-handle entries expire via TTL.
func (c *PostCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, postListKey).Err(); err != nil {
		c.logger.Warn("post cache invalidation failed", zap.Error(err))
	}
}
