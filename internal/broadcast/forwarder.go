package broadcast

import (
	"sync"

	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/logging"
)

// Forwarder bridges a Broker into a Hub: while at least one display is
// connected to a topic, the forwarder holds a subscription on that topic and
// pumps every payload into the hub. Wire its TopicActive/TopicEmpty methods
// into the hub's callbacks.
//
// The broker may be the in-memory Broker or the Redis-backed one; the hub
// never knows which transport is underneath.
type Forwarder struct {
	broker domain.Broker
	hub    *Hub

	mu   sync.Mutex
	subs map[string]domain.Subscription
}

func NewForwarder(broker domain.Broker, hub *Hub) *Forwarder {
	return &Forwarder{
		broker: broker,
		hub:    hub,
		subs:   make(map[string]domain.Subscription),
	}
}

// TopicActive starts forwarding a topic. Safe to call for an already-active
// topic.
func (f *Forwarder) TopicActive(topic string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subs[topic]; ok {
		return
	}

	sub := f.broker.Subscribe(topic)
	f.subs[topic] = sub
	logging.WithTopic(topic).Debug("Forwarding started")

	go func() {
		for msg := range sub.Messages() {
			f.hub.Broadcast(topic, msg)
		}
	}()
}

// TopicEmpty stops forwarding a topic and releases its subscription.
func (f *Forwarder) TopicEmpty(topic string) {
	f.mu.Lock()
	sub, ok := f.subs[topic]
	if ok {
		delete(f.subs, topic)
	}
	f.mu.Unlock()

	if ok {
		sub.Unsubscribe()
		logging.WithTopic(topic).Debug("Forwarding stopped")
	}
}

// Stop releases every active subscription.
func (f *Forwarder) Stop() {
	f.mu.Lock()
	subs := f.subs
	f.subs = make(map[string]domain.Subscription)
	f.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
