package eventbus

import (
	"context"
	"log/slog"

	"flipctl/internal/domain"
)

// LogSink subscribes to every event on the bus and records each one through
// the logger at debug level. The returned function unsubscribes.
func LogSink(bus *Bus, logger *slog.Logger) func() {
	return bus.SubscribeAll(func(ctx context.Context, event domain.Event) {
		logger.DebugContext(ctx, "event",
			"type", string(event.Type),
			"flow_id", event.FlowID,
			"payload", string(event.Payload),
		)
	})
}
