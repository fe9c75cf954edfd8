package domain

import "context"

// Broadcaster publishes presentation commands to a named topic. Delivery is
// fire-and-forget: at-most-once, no acknowledgment, no backfill for late
// subscribers. FIFO ordering is only guaranteed among messages published to
// the same topic by the same process.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Subscription is a live membership in one topic. Unsubscribe is idempotent
// and closes the message channel.
type Subscription interface {
	Messages() <-chan []byte
	Unsubscribe()
}

// Broker is a Broadcaster whose topics can also be subscribed to in-process.
type Broker interface {
	Broadcaster
	Subscribe(topic string) Subscription
}
