// Package events defines the roster change payloads published to Kafka.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the roster service.
const (
	TypeParticipantSignedUp     = "roster.participant_signed_up"
	TypeParticipantUnregistered = "roster.participant_unregistered"
)

// RosterChanged is emitted after a participant joins or leaves an activity.
type RosterChanged struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ActivityName string    `json:"activity_name"`
	Email        string    `json:"email"`
	Participants int       `json:"participants"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewRosterChanged builds an event with a fresh ID.
func NewRosterChanged(eventType, activityName, email string, participants int, at time.Time) RosterChanged {
	return RosterChanged{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		ActivityName: activityName,
		Email:        email,
		Participants: participants,
		OccurredAt:   at.UTC(),
	}
}
