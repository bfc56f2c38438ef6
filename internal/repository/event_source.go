package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// EventSubscription delivers named server-push events. The payload is
// ignored by consumers; receipt alone matters.
type EventSubscription interface {
	Events() <-chan string
	Close() error
}

// EventSource lazily establishes a push subscription.
type EventSource interface {
	Subscribe(ctx context.Context, channels ...string) (EventSubscription, error)
}

// RedisEventSource implements EventSource over Redis pub/sub.
type RedisEventSource struct {
	client *redis.Client
}

// NewRedisEventSource wraps a Redis client as an event source.
func NewRedisEventSource(client *redis.Client) *RedisEventSource {
	return &RedisEventSource{client: client}
}

// Subscribe opens a pub/sub subscription and confirms it before returning,
// so handlers only ever attach to an established connection.
func (s *RedisEventSource) Subscribe(ctx context.Context, channels ...string) (EventSubscription, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis client not configured")
	}
	sub := s.client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("confirm subscription: %w", err)
	}
	return &redisSubscription{sub: sub, events: make(chan string)}, nil
}

type redisSubscription struct {
	sub    *redis.PubSub
	events chan string
	once   sync.Once
}

func (s *redisSubscription) Events() <-chan string {
	s.once.Do(func() {
		go func() {
			defer close(s.events)
			for msg := range s.sub.Channel() {
				s.events <- msg.Channel
			}
		}()
	})
	return s.events
}

func (s *redisSubscription) Close() error {
	return s.sub.Close()
}
