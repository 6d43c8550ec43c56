// Package pubsub fans editor events out to subscribers: completion engine
// updates, catalog reloads and debug log entries.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// SessionOpened is published when a text change opens a completion popup.
	SessionOpened EventType = "session_opened"
	// SessionUpdated is published while the popup stays open.
	SessionUpdated EventType = "session_updated"
	// SessionClosed is published when a turn ends with no popup.
	SessionClosed EventType = "session_closed"

	CatalogReloaded EventType = "catalog_reloaded"
	CatalogFailed   EventType = "catalog_failed"

	// LogEntry carries one formatted debug log line.
	LogEntry EventType = "log_entry"
)

// Event is one published payload. Seq increases by one per Publish on the
// same broker, so a subscriber can spot dropped events.
type Event[T any] struct {
	Type      EventType
	Seq       uint64
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
