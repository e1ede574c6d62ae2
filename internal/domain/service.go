// Package domain defines the business logic for the activity roster service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"example.com/roster/internal/events"
)

var (
	// ErrActivityNotFound is returned when no activity matches the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered is returned when the email is already on the roster.
	ErrAlreadyRegistered = errors.New("student is already signed up for this activity")
	// ErrNotRegistered is returned when unregistering an email that is not on the roster.
	ErrNotRegistered = errors.New("student is not registered for this activity")
)

// RosterRepository captures roster storage. Implementations must perform the
// existence check, membership check and mutation of AddParticipant and
// RemoveParticipant atomically.
type RosterRepository interface {
	List(ctx context.Context) ([]Activity, error)
	// AddParticipant returns the roster size after the append.
	AddParticipant(ctx context.Context, activityName, email string) (int, error)
	// RemoveParticipant returns the roster size after the removal.
	RemoveParticipant(ctx context.Context, activityName, email string) (int, error)
}

// EventPublisher receives roster change notifications. Publish must not block.
type EventPublisher interface {
	Publish(ctx context.Context, event events.RosterChanged) error
}

// Recorder observes roster operation outcomes.
type Recorder interface {
	RecordSignup(activityName string, participants int, err error)
	RecordUnregister(activityName string, participants int, err error)
}

// Confirmation acknowledges a successful roster change.
type Confirmation struct {
	ActivityName string
	Email        string
	Message      string
}

// Service orchestrates roster workflows.
type Service struct {
	repo      RosterRepository
	publisher EventPublisher
	recorder  Recorder
	now       func() time.Time
}

// Option configures optional collaborators of the Service.
type Option func(*Service)

// WithPublisher sets the publisher notified after successful roster changes.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service.
func NewService(repo RosterRepository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: noopPublisher{},
		recorder:  noopRecorder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every activity in catalog order.
func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}

// SignUp registers email for the named activity.
func (s *Service) SignUp(ctx context.Context, activityName, email string) (*Confirmation, error) {
	count, err := s.repo.AddParticipant(ctx, activityName, email)
	s.recorder.RecordSignup(activityName, count, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewRosterChanged(events.TypeParticipantSignedUp, activityName, email, count, s.now()))

	return &Confirmation{
		ActivityName: activityName,
		Email:        email,
		Message:      fmt.Sprintf("Signed up %s for %s", email, activityName),
	}, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (*Confirmation, error) {
	count, err := s.repo.RemoveParticipant(ctx, activityName, email)
	s.recorder.RecordUnregister(activityName, count, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewRosterChanged(events.TypeParticipantUnregistered, activityName, email, count, s.now()))

	return &Confirmation{
		ActivityName: activityName,
		Email:        email,
		Message:      fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}, nil
}

// publish is best effort: the roster change has already been applied.
func (s *Service) publish(ctx context.Context, event events.RosterChanged) {
	_ = s.publisher.Publish(ctx, event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.RosterChanged) error { return nil }

type noopRecorder struct{}

func (noopRecorder) RecordSignup(string, int, error)     {}
func (noopRecorder) RecordUnregister(string, int, error) {}
