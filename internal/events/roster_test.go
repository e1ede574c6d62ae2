package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewRosterChanged(t *testing.T) {
	at := time.Date(2025, time.October, 27, 21, 0, 0, 0, time.FixedZone("CET", 3600))

	first := NewRosterChanged(TypeParticipantSignedUp, "Chess Club", "a@mergington.edu", 3, at)
	second := NewRosterChanged(TypeParticipantSignedUp, "Chess Club", "a@mergington.edu", 3, at)

	_, err := uuid.Parse(first.EventID)
	require.NoError(t, err)
	require.NotEqual(t, first.EventID, second.EventID)
	require.Equal(t, time.UTC, first.OccurredAt.Location())
	require.True(t, at.Equal(first.OccurredAt))
}
