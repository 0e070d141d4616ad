package event

import (
	"context"

	"github.com/bazaar/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler is a wildcard handler that records every published domain
// event, giving an audit trail of state changes in the log stream
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger.Named("events")}
}

// Handle implements shared.EventHandler
func (h *LoggingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes implements shared.EventHandler. Empty means all events.
func (h *LoggingHandler) EventTypes() []string {
	return nil
}
