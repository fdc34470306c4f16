package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// streamAdder - часть redis.Client, нужная для публикации
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher пишет события в Redis Stream
type RedisPublisher struct {
	client streamAdder
	closer func() error
	stream string
	maxLen int64
	now    func() time.Time
}

// NewRedisPublisher подключается по URL и проверяет соединение
func NewRedisPublisher(ctx context.Context, redisURL, stream string, maxLen int64) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisPublisher(client, client.Close, stream, maxLen), nil
}

func newRedisPublisher(client streamAdder, closer func() error, stream string, maxLen int64) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		closer: closer,
		stream: stream,
		maxLen: maxLen,
		now:    time.Now,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	args, err := p.buildArgs(event)
	if err != nil {
		return err
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *RedisPublisher) buildArgs(event Event) (*redis.XAddArgs, error) {
	at := event.At
	if at.IsZero() {
		at = p.now()
	}

	payload := "{}"
	if len(event.Payload) > 0 {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event payload: %w", err)
		}
		payload = string(raw)
	}

	return &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":    event.Type,
			"actor":   event.Actor,
			"subject": event.Subject,
			"payload": payload,
			"at":      at.UTC().Format(time.RFC3339Nano),
		},
	}, nil
}

func (p *RedisPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
