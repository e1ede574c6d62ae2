// Package memory holds the in-process roster store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"example.com/roster/internal/domain"
)

// Repository stores the activity catalog in memory. A single lock covers the
// whole catalog so that every check-then-mutate sequence is atomic.
type Repository struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*domain.Activity
}

// NewRepository builds a store from seed activities, keeping their order.
// Seeds are copied; later changes to the argument do not leak into the store.
func NewRepository(seed []domain.Activity) (*Repository, error) {
	repo := &Repository{
		order:      make([]string, 0, len(seed)),
		activities: make(map[string]*domain.Activity, len(seed)),
	}
	for _, activity := range seed {
		if _, exists := repo.activities[activity.Name]; exists {
			return nil, fmt.Errorf("duplicate activity %q", activity.Name)
		}
		clone := activity.Clone()
		repo.activities[activity.Name] = &clone
		repo.order = append(repo.order, activity.Name)
	}
	return repo, nil
}

// List implements domain.RosterRepository.
func (r *Repository) List(ctx context.Context) ([]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Activity, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.activities[name].Clone())
	}
	return out, nil
}

// Get returns a copy of a single activity.
func (r *Repository) Get(ctx context.Context, name string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	clone := activity.Clone()
	return &clone, nil
}

// AddParticipant implements domain.RosterRepository.
func (r *Repository) AddParticipant(ctx context.Context, activityName, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return 0, domain.ErrActivityNotFound
	}
	if err := activity.AddParticipant(email); err != nil {
		return len(activity.Participants), err
	}
	return len(activity.Participants), nil
}

// RemoveParticipant implements domain.RosterRepository.
func (r *Repository) RemoveParticipant(ctx context.Context, activityName, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return 0, domain.ErrActivityNotFound
	}
	if err := activity.RemoveParticipant(email); err != nil {
		return len(activity.Participants), err
	}
	return len(activity.Participants), nil
}
