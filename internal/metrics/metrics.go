// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BroadcastMessagesTotal counts presentation commands published, by action.
	BroadcastMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presenter_broadcast_messages_total",
			Help: "Total presentation commands published, by action",
		},
		[]string{"action"},
	)

	// BroadcastDroppedTotal counts payloads dropped because a subscriber's
	// buffer was full.
	BroadcastDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "presenter_broadcast_dropped_total",
			Help: "Total broadcast payloads dropped on full subscriber buffers",
		},
	)

	// BroadcastTopicsActive tracks topics with at least one subscriber.
	BroadcastTopicsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "presenter_broadcast_topics_active",
			Help: "Broadcast topics with at least one subscriber",
		},
	)

	// DisplayClientsConnected tracks connected display WebSocket clients.
	DisplayClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "presenter_display_clients_connected",
			Help: "Currently connected display clients",
		},
	)

	// SlowDisplaysEvicted counts displays disconnected for not keeping up.
	SlowDisplaysEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "presenter_slow_displays_evicted_total",
			Help: "Display clients evicted because their send buffer filled",
		},
	)

	// RelayMessagesReceived counts pub/sub messages relayed per channel.
	RelayMessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presenter_relay_messages_received_total",
			Help: "Pub/sub messages received by the relay, by channel",
		},
		[]string{"channel"},
	)
)
