// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventMessage is the JSON body of a published event.
type OrderEventMessage struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Recipient   string    `json:"recipient"`
	RecipientID *string   `json:"recipient_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier implements ports.Notifier on top of a kafka-go writer. Messages
// are keyed by order id, so the Hash balancer keeps the events of one order
// on one partition and in order.
type Notifier struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

var _ ports.Notifier = (*Notifier)(nil)

// NewWriter builds the async writer used in production. WriteMessages returns
// before delivery, so the outcome of every message is counted in Completion.
func NewWriter(brokersCSV, topic string, logger *slog.Logger, m *metrics.Metrics) *kafka.Writer {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             deliveryReport(logger, m),
	}
}

func deliveryReport(logger *slog.Logger, m *metrics.Metrics) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		for _, msg := range messages {
			eventType := headerValue(msg, "event_type")
			if err == nil {
				m.Notifications.WithLabelValues(eventType, "published").Inc()
				continue
			}

			m.Notifications.WithLabelValues(eventType, "failed").Inc()
			logger.Error("order event not delivered",
				"order_id", string(msg.Key), "type", eventType, "error", err)
		}
	}
}

func NewNotifier(writer messageWriter, logger *slog.Logger, m *metrics.Metrics) *Notifier {
	return &Notifier{
		writer:  writer,
		logger:  logger.With("component", "kafka_notifier"),
		metrics: m,
	}
}

// Notify hands the event to the writer. It never fails the caller. Only
// errors raised before the writer accepts the message are counted here;
// the delivery outcome is reported by the writer's Completion.
func (n *Notifier) Notify(ctx context.Context, event ports.OrderEvent) {
	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		n.failed(ctx, event, err)
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		n.failed(ctx, event, err)
	}
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

func (n *Notifier) failed(ctx context.Context, event ports.OrderEvent, err error) {
	n.metrics.Notifications.WithLabelValues(string(event.Type), "failed").Inc()
	n.logger.ErrorContext(ctx, "failed to publish order event",
		"order_id", event.OrderID.String(), "type", string(event.Type), "error", err)
}

func toMessage(event ports.OrderEvent) OrderEventMessage {
	msg := OrderEventMessage{
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		Status:     event.Status.String(),
		Recipient:  string(event.Recipient),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.RecipientID != nil {
		id := event.RecipientID.String()
		msg.RecipientID = &id
	}
	return msg
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
