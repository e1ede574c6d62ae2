// Package outbox buffers roster events and delivers them to Kafka.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"example.com/roster/internal/events"
)

// ErrBufferFull is returned by Publish when the dispatcher cannot accept more events.
var ErrBufferFull = errors.New("outbox buffer full")

// ErrStopped is returned by Publish once the dispatcher has shut down.
var ErrStopped = errors.New("outbox dispatcher stopped")

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// Config tunes the dispatcher.
type Config struct {
	Topic         string
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
	// DrainTimeout bounds delivery of the events still queued at shutdown.
	DrainTimeout time.Duration
}

// Dispatcher queues roster events in memory and publishes them in batches.
type Dispatcher struct {
	producer         messageWriter
	cfg              Config
	logger           *zap.SugaredLogger
	queue            chan events.RosterChanged
	stopped          atomic.Bool
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher. Zero config values fall back to defaults.
func NewDispatcher(producer messageWriter, cfg Config, logger *zap.SugaredLogger) *Dispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		producer:         producer,
		cfg:              cfg,
		logger:           logger,
		queue:            make(chan events.RosterChanged, cfg.BufferSize),
		shutdownComplete: make(chan struct{}),
	}
}

// Publish enqueues the event without blocking. It implements domain.EventPublisher.
func (d *Dispatcher) Publish(_ context.Context, event events.RosterChanged) error {
	if d.stopped.Load() {
		droppedCounter.Inc()
		return ErrStopped
	}
	select {
	case d.queue <- event:
		return nil
	default:
		droppedCounter.Inc()
		d.logger.Warnw("outbox buffer full, dropping event",
			"event_type", event.EventType, "activity", event.ActivityName)
		return ErrBufferFull
	}
}

// Start runs the delivery loop until ctx is cancelled. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.FlushInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	batch := make([]events.RosterChanged, 0, d.cfg.BatchSize)
	for {
		select {
		case <-ctx.Done():
			d.stopped.Store(true)
			d.drain(batch)
			return
		case event := <-d.queue:
			batch = append(batch, event)
			if len(batch) >= d.cfg.BatchSize {
				d.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				d.flush(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

// Wait blocks until the dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) drain(batch []events.RosterChanged) {
	for {
		select {
		case event := <-d.queue:
			batch = append(batch, event)
			continue
		default:
		}
		break
	}
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DrainTimeout)
	defer cancel()
	d.flush(ctx, batch)
}

func (d *Dispatcher) flush(ctx context.Context, batch []events.RosterChanged) {
	start := time.Now()
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	if err := d.deliver(ctx, batch); err != nil {
		failedCounter.Add(float64(len(batch)))
		d.logger.Errorw("outbox delivery failed", "events", len(batch), "error", err)
		return
	}
	deliveredCounter.Add(float64(len(batch)))
}

func (d *Dispatcher) deliver(ctx context.Context, batch []events.RosterChanged) error {
	msgs := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		msg, err := encode(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return d.producer.WriteMessages(ctx, d.cfg.Topic, msgs...)
}

func encode(event events.RosterChanged) (kafka.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event %s: %w", event.EventID, err)
	}
	return kafka.Message{
		Key:   []byte(event.ActivityName),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}
