// Package redisq is the Redis-backed broadcast transport.
//
// It implements the same Broker contract as the in-memory one, so the hub and
// the app service never see which transport is configured. Redis pub/sub gives
// the ordering the presenter protocol needs (FIFO per channel per publisher
// connection) as long as each instance publishes through one client, which is
// how the service wires it.
package redisq
