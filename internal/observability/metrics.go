// Package observability exposes Prometheus instrumentation for roster operations.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/roster/internal/domain"
)

// Result label values.
const (
	ResultOK                = "ok"
	ResultNotFound          = "not_found"
	ResultAlreadyRegistered = "already_registered"
	ResultNotRegistered     = "not_registered"
	ResultError             = "error"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Signup attempts grouped by result.",
	}, []string{"result"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "unregistrations_total",
		Help:      "Unregister attempts grouped by result.",
	}, []string{"result"})

	participantsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "roster_service",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current number of registered participants per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, participantsGauge)
}

// RosterRecorder implements domain.Recorder on top of the package collectors.
type RosterRecorder struct{}

// RecordSignup counts the attempt and, on success, updates the roster gauge.
func (RosterRecorder) RecordSignup(activityName string, participants int, err error) {
	signupCounter.WithLabelValues(Result(err)).Inc()
	if err == nil {
		participantsGauge.WithLabelValues(activityName).Set(float64(participants))
	}
}

// RecordUnregister counts the attempt and, on success, updates the roster gauge.
func (RosterRecorder) RecordUnregister(activityName string, participants int, err error) {
	unregisterCounter.WithLabelValues(Result(err)).Inc()
	if err == nil {
		participantsGauge.WithLabelValues(activityName).Set(float64(participants))
	}
}

// RecordRosterSizes seeds the gauge, typically from the startup catalog.
func RecordRosterSizes(activities []domain.Activity) {
	for _, activity := range activities {
		participantsGauge.WithLabelValues(activity.Name).Set(float64(len(activity.Participants)))
	}
}

// Result maps an operation error to its label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrActivityNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return ResultAlreadyRegistered
	case errors.Is(err, domain.ErrNotRegistered):
		return ResultNotRegistered
	default:
		return ResultError
	}
}
