// Package broadcast fans presentation commands out to display clients.
//
// Broker is the in-process pub/sub topic registry; Hub owns the WebSocket
// connections and forwards every payload published on a topic to the displays
// subscribed to it. Delivery is best-effort with no backfill: a display that
// connects after a command was published waits for the next one.
package broadcast
