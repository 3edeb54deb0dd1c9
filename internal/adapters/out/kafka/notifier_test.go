package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newEvent() ports.OrderEvent {
	clientID := kernel.NewUUID()
	return ports.OrderEvent{
		Type:        ports.EventOrderAccepted,
		OrderID:     kernel.NewUUID(),
		Status:      order.InPreparation,
		Recipient:   ports.RoleClient,
		RecipientID: &clientID,
		OccurredAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_Notify_PublishesKeyedJSON(t *testing.T) {
	writer := &fakeWriter{}
	m := metrics.New(prometheus.NewRegistry())
	notifier := NewNotifier(writer, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), m)
	event := newEvent()

	notifier.Notify(context.Background(), event)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, event.OrderID.String(), string(msg.Key))
	assert.Equal(t, "order.accepted", headerValue(msg, "event_type"))

	var body OrderEventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order.accepted", body.Type)
	assert.Equal(t, order.InPreparation.String(), body.Status)
	assert.Equal(t, "client", body.Recipient)
	require.NotNil(t, body.RecipientID)
	assert.Equal(t, event.RecipientID.String(), *body.RecipientID)
	assert.True(t, event.OccurredAt.Equal(body.OccurredAt))

	// counted once the writer reports delivery
	assert.InDelta(t, 0, testutil.ToFloat64(m.Notifications.WithLabelValues("order.accepted", "published")), 0)
}

func TestNotifier_Notify_LogsFailureWithoutPanicking(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unreachable")}
	m := metrics.New(prometheus.NewRegistry())
	var logs bytes.Buffer
	notifier := NewNotifier(writer, slog.New(slog.NewTextHandler(&logs, nil)), m)

	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), newEvent())
	})

	assert.Contains(t, logs.String(), "failed to publish order event")
	assert.Contains(t, logs.String(), "broker unreachable")
	assert.InDelta(t, 1, testutil.ToFloat64(m.Notifications.WithLabelValues("order.accepted", "failed")), 0)
}

func TestNotifier_Close(t *testing.T) {
	writer := &fakeWriter{}
	notifier := NewNotifier(writer, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), metrics.New(prometheus.NewRegistry()))

	require.NoError(t, notifier.Close())
	assert.True(t, writer.closed)
}

func TestNewWriter_Config(t *testing.T) {
	writer := NewWriter(" kafka-1:9092, kafka-2:9092,", "order-changed", slog.Default(), metrics.New(prometheus.NewRegistry()))

	assert.Equal(t, "order-changed", writer.Topic)
	assert.True(t, writer.Async)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
}

func TestNewWriter_CompletionCountsEachOutcomeOnce(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	var logs bytes.Buffer
	writer := NewWriter("kafka:9092", "order-changed", slog.New(slog.NewTextHandler(&logs, nil)), m)
	msg := kafka.Message{
		Key:     []byte(kernel.NewUUID().String()),
		Headers: []kafka.Header{{Key: "event_type", Value: []byte("order.delivered")}},
	}

	writer.Completion([]kafka.Message{msg, msg}, nil)
	writer.Completion([]kafka.Message{msg}, errors.New("leader not available"))

	published := m.Notifications.WithLabelValues("order.delivered", "published")
	failed := m.Notifications.WithLabelValues("order.delivered", "failed")
	assert.InDelta(t, 2, testutil.ToFloat64(published), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(failed), 0)
	assert.Contains(t, logs.String(), "order event not delivered")
	assert.Contains(t, logs.String(), "leader not available")
}
