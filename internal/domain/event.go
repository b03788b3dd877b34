package domain

import (
	"context"
	"encoding/json"
	"time"
)

// EventType identifies the kind of event being published.
type EventType string

const (
	// Flow lifecycle events.
	EventFlowStarted        EventType = "flow.started"
	EventFlowTenantsFetched EventType = "flow.tenants_fetched"
	EventFlowCommandRun     EventType = "flow.command_executed"
	EventFlowCompleted      EventType = "flow.completed"
	EventFlowFailed         EventType = "flow.failed"
	EventFlowCancelled      EventType = "flow.cancelled"

	// Runner process events.
	EventRunnerStarted  EventType = "runner.started"
	EventRunnerFinished EventType = "runner.finished"
)

// Event is the envelope published on the event bus.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	FlowID    string          `json:"flow_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// EventHandler is a callback invoked when an event is received.
type EventHandler func(ctx context.Context, event Event)

// EventBus provides a publish/subscribe mechanism for domain events.
type EventBus interface {
	// Publish sends an event to all matching subscribers.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for a specific event type.
	// Returns an unsubscribe function.
	Subscribe(eventType EventType, handler EventHandler) func()
	// SubscribeAll registers a handler that receives every event.
	// Returns an unsubscribe function.
	SubscribeAll(handler EventHandler) func()
	// Close drains in-flight handlers and prevents new publishes.
	Close()
}
