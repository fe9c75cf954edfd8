package broadcast

import (
	"context"
	"sync"

	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/metrics"
)

const subscriptionBufferSize = 16

// Broker is an in-memory topic registry implementing domain.Broker. It is the
// broadcast transport for single-instance deployments and the substitute for
// Redis in tests. Publishes from one goroutine reach each subscriber in FIFO
// order; a subscriber whose buffer is full misses the message rather than
// applying backpressure to the publisher.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*brokerSubscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[*brokerSubscription]struct{})}
}

type brokerSubscription struct {
	broker *Broker
	topic  string
	ch     chan []byte
	once   sync.Once
}

func (s *brokerSubscription) Messages() <-chan []byte { return s.ch }

func (s *brokerSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.broker.mu.Lock()
		if subs, ok := s.broker.topics[s.topic]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.broker.topics, s.topic)
			}
		}
		s.broker.mu.Unlock()
		metrics.BroadcastTopicsActive.Set(float64(s.broker.topicCount()))
		close(s.ch)
	})
}

// Subscribe joins a topic. The subscription receives only payloads published
// after this call returns.
func (b *Broker) Subscribe(topic string) domain.Subscription {
	sub := &brokerSubscription{
		broker: b,
		topic:  topic,
		ch:     make(chan []byte, subscriptionBufferSize),
	}

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*brokerSubscription]struct{})
		b.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	b.mu.Unlock()

	metrics.BroadcastTopicsActive.Set(float64(b.topicCount()))
	return sub
}

// Publish delivers payload to every current subscriber of topic. It never
// blocks and never fails; a topic with no subscribers drops the payload.
func (b *Broker) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	for sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
		default:
			metrics.BroadcastDroppedTotal.Inc()
		}
	}
	b.mu.RUnlock()
	return nil
}

func (b *Broker) topicCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics)
}
