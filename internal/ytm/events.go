package ytm

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const eventPlaylistItemsAdded = "ytm.playlist.items_added"

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// RedisPublisher sends {"type", "payload"} envelopes on a pub/sub channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, string(data)).Err()
}
