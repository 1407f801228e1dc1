package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sentKeyPrefix    = "message:"
	inboundKeyPrefix = "inbound:"
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

type sentValue struct {
	NotificationID int64     `json:"notificationId"`
	SentAt         time.Time `json:"sentAt"`
}

func (c *RedisCache) StoreSent(ctx context.Context, notificationID int64, providerMessageID string, sentAt time.Time) error {
	b, err := json.Marshal(sentValue{
		NotificationID: notificationID,
		SentAt:         sentAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode sent message: %w", err)
	}

	if err := c.rdb.Set(ctx, sentKeyPrefix+providerMessageID, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache sent message: %w", err)
	}

	return nil
}

func (c *RedisCache) LookupSent(ctx context.Context, providerMessageID string) (SentMessage, bool, error) {
	raw, err := c.rdb.Get(ctx, sentKeyPrefix+providerMessageID).Bytes()
	if errors.Is(err, redis.Nil) {
		return SentMessage{}, false, nil
	}
	if err != nil {
		return SentMessage{}, false, fmt.Errorf("failed to read sent message: %w", err)
	}

	var v sentValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return SentMessage{}, false, fmt.Errorf("failed to decode sent message: %w", err)
	}

	return SentMessage{NotificationID: v.NotificationID, SentAt: v.SentAt}, true, nil
}

func (c *RedisCache) MarkInbound(ctx context.Context, messageSid string) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, inboundKeyPrefix+messageSid, time.Now().UTC().Format(time.RFC3339), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark inbound message: %w", err)
	}

	return ok, nil
}

func (c *RedisCache) ReleaseInbound(ctx context.Context, messageSid string) error {
	if err := c.rdb.Del(ctx, inboundKeyPrefix+messageSid).Err(); err != nil {
		return fmt.Errorf("failed to release inbound message: %w", err)
	}

	return nil
}
