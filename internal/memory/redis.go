package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/turingair/flightassist/config"
)

type RedisHistory struct {
	client *redis.Client
	ttl    time.Duration
	window int
}

func NewRedisHistory(cfg config.RedisConfig, ttl time.Duration, window int) *RedisHistory {
	return &RedisHistory{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
		window: window,
	}
}

func (h *RedisHistory) Load(ctx context.Context, conversationID string) ([]Message, error) {
	data, err := h.client.Get(ctx, historyKey(conversationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (h *RedisHistory) Append(ctx context.Context, conversationID string, msgs ...Message) error {
	current, err := h.Load(ctx, conversationID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(trim(append(current, msgs...), h.window))
	if err != nil {
		return err
	}
	return h.client.Set(ctx, historyKey(conversationID), payload, h.ttl).Err()
}

func historyKey(conversationID string) string {
	return fmt.Sprintf("chat:history:%s", conversationID)
}

var _ History = (*RedisHistory)(nil)
