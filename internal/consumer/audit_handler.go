package consumer

import (
	"context"

	"go.uber.org/zap"

	"example.com/roster/internal/events"
)

// AuditHandler writes every roster change to a structured audit log.
type AuditHandler struct {
	logger *zap.SugaredLogger
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(logger *zap.SugaredLogger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// Handle implements Handler.
func (h *AuditHandler) Handle(_ context.Context, msg Message) error {
	action := "signed_up"
	if msg.Event.EventType == events.TypeParticipantUnregistered {
		action = "unregistered"
	}
	h.logger.Infow("roster change",
		"action", action,
		"activity", msg.Event.ActivityName,
		"email", msg.Event.Email,
		"participants", msg.Event.Participants,
		"event_id", msg.Event.EventID,
		"occurred_at", msg.Event.OccurredAt,
		"partition", msg.Partition,
		"offset", msg.Offset,
	)
	return nil
}
