//go:build integration

package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"example.com/roster/internal/events"
)

func TestDispatcherPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx, testcontainers.WithEnv(map[string]string{
		"KAFKA_AUTO_CREATE_TOPICS_ENABLE": "true",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	topic := "roster_events"
	conn, err := kafka.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))

	producer := NewKafkaProducer(brokers)
	t.Cleanup(func() { _ = producer.Close() })

	runCtx, stop := context.WithCancel(ctx)
	dispatcher := NewDispatcher(producer, Config{Topic: topic, BatchSize: 1, FlushInterval: 100 * time.Millisecond}, nil)
	go dispatcher.Start(runCtx)

	sent := events.NewRosterChanged(events.TypeParticipantSignedUp, "Chess Club", "newstudent@mergington.edu", 3, time.Now())
	require.NoError(t, dispatcher.Publish(ctx, sent))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Chess Club", string(msg.Key))

	var received events.RosterChanged
	require.NoError(t, json.Unmarshal(msg.Value, &received))
	require.Equal(t, sent.EventID, received.EventID)
	require.Equal(t, sent.Email, received.Email)

	stop()
	dispatcher.Wait()
}
