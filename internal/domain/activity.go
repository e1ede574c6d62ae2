package domain

// Activity is an extracurricular offering and its current roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	// Participants holds registered emails in signup order.
	Participants []string
}

// Clone returns a copy whose participant slice does not alias the receiver's.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is on the roster. Matching is exact.
func (a Activity) HasParticipant(email string) bool {
	return a.indexOf(email) >= 0
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// AddParticipant appends email to the roster. It returns ErrAlreadyRegistered
// and leaves the roster untouched when the email is already present.
func (a *Activity) AddParticipant(email string) error {
	if a.HasParticipant(email) {
		return ErrAlreadyRegistered
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// RemoveParticipant drops email from the roster, keeping the order of the
// remaining entries.
func (a *Activity) RemoveParticipant(email string) error {
	idx := a.indexOf(email)
	if idx < 0 {
		return ErrNotRegistered
	}
	a.Participants = append(a.Participants[:idx], a.Participants[idx+1:]...)
	return nil
}
