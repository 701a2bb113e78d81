package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const settingsKeyPrefix = "settings:"

// SettingsCache is a read-through Redis cache of settings records. A nil
// cache is valid and caches nothing. Redis failures are logged and treated
// as misses.
type SettingsCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewSettingsCache returns nil when client is nil
func NewSettingsCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SettingsCache {
	if client == nil {
		return nil
	}
	return &SettingsCache{redis: client, ttl: ttl, log: log}
}

func (c *SettingsCache) Get(ctx context.Context, userID string) (*model.UserSettings, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, settingsKeyPrefix+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("settings cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, false
	}

	var settings model.UserSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		c.log.Warn("settings cache entry corrupt", zap.String("user_id", userID), zap.Error(err))
		return nil, false
	}
	return &settings, true
}

func (c *SettingsCache) Set(ctx context.Context, settings *model.UserSettings) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, settingsKeyPrefix+settings.UserID, raw, c.ttl).Err(); err != nil {
		c.log.Warn("settings cache write failed", zap.String("user_id", settings.UserID), zap.Error(err))
	}
}

func (c *SettingsCache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.redis.Del(ctx, settingsKeyPrefix+userID).Err(); err != nil {
		c.log.Warn("settings cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
