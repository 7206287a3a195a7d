package repository

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const participantCachePrefix = "codeverse:participant:"

// ParticipantCache is a display-only copy of participant records. It is
// never consulted for unlock decisions. A nil client turns every call into
// a miss.
type ParticipantCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewParticipantCache(rdb *redis.Client, ttl time.Duration) *ParticipantCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ParticipantCache{Redis: rdb, TTL: ttl}
}

func participantKey(email string) string {
	return participantCachePrefix + email
}

func (c *ParticipantCache) Get(ctx context.Context, email string) (*model.Participant, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	raw, err := c.Redis.Get(ctx, participantKey(email)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("participant cache get failed", zap.String("email", email), zap.Error(err))
		}
		return nil, false
	}
	var p model.Participant
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.Log.Warn("participant cache entry corrupt", zap.String("email", email), zap.Error(err))
		return nil, false
	}
	return &p, true
}

// Set overwrites the cached copy. Failures are logged and swallowed.
func (c *ParticipantCache) Set(ctx context.Context, p *model.Participant) {
	if c == nil || c.Redis == nil || p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, participantKey(p.Email), raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("participant cache set failed", zap.String("email", p.Email), zap.Error(err))
	}
}

func (c *ParticipantCache) Invalidate(ctx context.Context, email string) {
	if c == nil || c.Redis == nil {
		return
	}
	if err := c.Redis.Del(ctx, participantKey(email)).Err(); err != nil {
		logger.Log.Warn("participant cache invalidate failed", zap.String("email", email), zap.Error(err))
	}
}

func (c *ParticipantCache) Ping(ctx context.Context) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	return c.Redis.Ping(ctx).Err()
}
