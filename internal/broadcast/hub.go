package broadcast

import (
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/lporras/gedeon/internal/metrics"
)

type topicClients map[*websocket.Conn]*clientWriter

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	topic string
	conn  *websocket.Conn
	errCh chan error
}

type unregisterCmd struct {
	baseHubCmd
	topic string
	conn  *websocket.Conn
}

type broadcastCmd struct {
	baseHubCmd
	topic string
	data  []byte
}

type clientCountCmd struct {
	baseHubCmd
	topic   string
	replyCh chan int
}

type hubStopCmd struct {
	baseHubCmd
}

// Hub manages display WebSocket connections grouped by topic and pushes every
// broadcast payload to the topic's clients. A single goroutine owns all maps,
// so no locking is needed; callers talk to it through the command channel.
type Hub struct {
	cmdCh         chan hubCmd
	clock         clockwork.Clock
	clients       map[string]topicClients
	maxPerTopic   int
	onTopicActive func(topic string)
	onTopicEmpty  func(topic string)
	done          chan struct{}
}

// NewHub creates a hub. maxPerTopic caps connections per topic. onTopicActive
// fires when a topic gains its first display, onTopicEmpty when its last one
// disconnects; both are optional and drive the upstream topic subscriptions.
func NewHub(clock clockwork.Clock, maxPerTopic int, onTopicActive, onTopicEmpty func(topic string)) *Hub {
	h := &Hub{
		cmdCh:         make(chan hubCmd, 256),
		clock:         clock,
		clients:       make(map[string]topicClients),
		maxPerTopic:   maxPerTopic,
		onTopicActive: onTopicActive,
		onTopicEmpty:  onTopicEmpty,
		done:          make(chan struct{}),
	}
	go h.run()
	return h
}

// Register adds a display connection to a topic. Returns an error only when
// the topic is at its connection cap.
func (h *Hub) Register(topic string, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{topic: topic, conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a display connection from a topic. Idempotent.
func (h *Hub) Unregister(topic string, conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{topic: topic, conn: conn}
}

// Broadcast queues data for every display currently on the topic.
// Fire-and-forget: slow clients are evicted, nobody is waited on.
func (h *Hub) Broadcast(topic string, data []byte) {
	h.cmdCh <- broadcastCmd{topic: topic, data: data}
}

// ClientCount returns the number of displays on a topic.
func (h *Hub) ClientCount(topic string) int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{topic: topic, replyCh: replyCh}
	return <-replyCh
}

// Stop closes every display connection and shuts the hub down.
func (h *Hub) Stop() {
	h.cmdCh <- hubStopCmd{}
	<-h.done
}

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c.topic, c.conn)
		case broadcastCmd:
			h.handleBroadcast(c)
		case clientCountCmd:
			c.replyCh <- len(h.clients[c.topic])
		case hubStopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	clients, exists := h.clients[c.topic]
	if !exists {
		clients = make(topicClients)
		h.clients[c.topic] = clients
	}

	if len(clients) >= h.maxPerTopic {
		slog.Warn("Rejecting display: max clients reached", "topic", c.topic, "max_clients", h.maxPerTopic)
		_ = c.conn.Close()
		c.errCh <- fmt.Errorf("max clients per topic (%d) reached", h.maxPerTopic)
		return
	}

	clients[c.conn] = newClientWriter(c.conn, h.clock)
	metrics.DisplayClientsConnected.Inc()
	if !exists && h.onTopicActive != nil {
		h.onTopicActive(c.topic)
	}
	slog.Debug("Display registered", "topic", c.topic, "total_clients", len(clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(topic string, conn *websocket.Conn) {
	clients, exists := h.clients[topic]
	if !exists {
		return
	}

	cw, exists := clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, conn)
	metrics.DisplayClientsConnected.Dec()

	if len(clients) == 0 {
		delete(h.clients, topic)
		if h.onTopicEmpty != nil {
			h.onTopicEmpty(topic)
		}
		slog.Info("Last display disconnected", "topic", topic)
	} else {
		slog.Debug("Display unregistered", "topic", topic, "remaining_clients", len(clients))
	}
}

func (h *Hub) handleBroadcast(c broadcastCmd) {
	clients, exists := h.clients[c.topic]
	if !exists {
		return
	}

	var slow []*websocket.Conn
	for conn, cw := range clients {
		select {
		case cw.sendCh <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow display", "topic", c.topic)
		metrics.SlowDisplaysEvicted.Inc()
		h.handleUnregister(c.topic, conn)
	}
}

func (h *Hub) handleStop() {
	total := 0
	for topic, clients := range h.clients {
		total += len(clients)
		for _, cw := range clients {
			cw.stop()
		}
		delete(h.clients, topic)
	}
	metrics.DisplayClientsConnected.Set(0)
	slog.Info("Hub shutdown complete", "disconnected_clients", total)
}
