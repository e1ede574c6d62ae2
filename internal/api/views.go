package api

import (
	"bytes"
	"encoding/json"

	"example.com/roster/internal/domain"
)

// ActivityView is the JSON descriptor of one activity.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivitiesResponse maps activity name to descriptor. It marshals as a JSON
// object whose keys keep catalog order.
type ActivitiesResponse struct {
	names []string
	views map[string]ActivityView
}

// Names returns the activity names in catalog order.
func (r ActivitiesResponse) Names() []string {
	return r.names
}

// Get returns the descriptor for name.
func (r ActivitiesResponse) Get(name string) (ActivityView, bool) {
	view, ok := r.views[name]
	return view, ok
}

// MarshalJSON implements json.Marshaler.
func (r ActivitiesResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.views[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MessageResponse acknowledges a roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

func toActivitiesResponse(activities []domain.Activity) ActivitiesResponse {
	resp := ActivitiesResponse{
		names: make([]string, 0, len(activities)),
		views: make(map[string]ActivityView, len(activities)),
	}
	for _, activity := range activities {
		participants := activity.Participants
		if participants == nil {
			participants = []string{}
		}
		resp.names = append(resp.names, activity.Name)
		resp.views[activity.Name] = ActivityView{
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			Participants:    participants,
		}
	}
	return resp
}
