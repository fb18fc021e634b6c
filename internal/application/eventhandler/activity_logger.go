package eventhandler

import (
	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ActivityLogger writes one structured line per domain event, local or
// remote, so the log carries the session's activity trail.
type ActivityLogger struct {
	log *logger.Logger
}

// NewActivityLogger creates a new ActivityLogger.
func NewActivityLogger(log *logger.Logger) *ActivityLogger {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityLogger{log: log.Named("activity")}
}

// Register subscribes the logger to every event.
func (l *ActivityLogger) Register(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(l.Handle)
}

// Handle implements shared.EventHandler.
func (l *ActivityLogger) Handle(event shared.Event) error {
	fields := []logger.Field{
		logger.String("event_type", string(event.EventType())),
		logger.SessionID(event.AggregateID()),
		logger.Time("occurred_at", event.OccurredAt()),
		logger.Bool("remote", shared.IsRemote(event)),
	}
	for k, v := range event.Payload() {
		fields = append(fields, logger.Any(k, v))
	}
	l.log.Info("activity", fields...)
	return nil
}
