package redisq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/metrics"
)

// Broker implements domain.Broker on Redis pub/sub. Publish fans a payload
// out to every instance subscribed to the channel; Subscribe opens a
// dedicated pub/sub connection for the topic.
type Broker struct {
	rdb *redis.Client
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{rdb: rdb}
}

// Publish sends payload to the Redis channel named by topic. A failure is the
// publisher's to log; subscribers simply never see the message.
func (b *Broker) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.rdb.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan []byte
	cancel context.CancelFunc
	once   sync.Once
}

func (s *redisSubscription) Messages() <-chan []byte { return s.ch }

func (s *redisSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		if err := s.pubsub.Close(); err != nil {
			slog.Warn("Failed to close pub/sub subscription", "error", err)
		}
	})
}

// Subscribe opens a Redis subscription on the topic. Messages published
// before this call are never delivered; closing is idempotent.
func (b *Broker) Subscribe(topic string) domain.Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := b.rdb.Subscribe(ctx, topic)

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan []byte, 16),
		cancel: cancel,
	}

	go func() {
		defer close(sub.ch)
		src := pubsub.Channel()
		for {
			select {
			case msg, ok := <-src:
				if !ok {
					return
				}
				metrics.RelayMessagesReceived.WithLabelValues("schedule_presenter").Inc()
				select {
				case sub.ch <- []byte(msg.Payload):
				default:
					metrics.BroadcastDroppedTotal.Inc()
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}
