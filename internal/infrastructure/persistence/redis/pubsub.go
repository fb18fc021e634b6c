package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/smartstart/smartstart-money/internal/infrastructure/messaging"
)

// PubSub adapts a go-redis client to messaging.RedisClient.
type PubSub struct {
	client redis.UniversalClient

	mu   sync.Mutex
	subs []*redis.PubSub
}

// NewPubSub wraps client. Closing the adapter closes its subscriptions only;
// the client is owned by the caller.
func NewPubSub(client redis.UniversalClient) *PubSub {
	return &PubSub{client: client}
}

// Publish implements messaging.RedisClient.
func (p *PubSub) Publish(ctx context.Context, channel string, message interface{}) error {
	return p.client.Publish(ctx, channel, message).Err()
}

// Subscribe implements messaging.RedisClient. The returned channel closes when
// ctx is done or the subscription is closed.
func (p *PubSub) Subscribe(ctx context.Context, channels ...string) (<-chan messaging.RedisMessage, error) {
	sub := p.client.Subscribe(ctx, channels...)
	// Wait for the confirmation so messages published right after
	// Subscribe returns are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	p.mu.Lock()
	p.subs = append(p.subs, sub)
	p.mu.Unlock()

	out := make(chan messaging.RedisMessage)
	go func() {
		defer close(out)
		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- messaging.RedisMessage{Channel: msg.Channel, Payload: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close implements messaging.RedisClient.
func (p *PubSub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, sub := range p.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.subs = nil
	return firstErr
}

var _ messaging.RedisClient = (*PubSub)(nil)
