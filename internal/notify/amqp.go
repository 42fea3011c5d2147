package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"toolshare-backend/internal/logger"
)

// EventQueueName is the durable queue external consumers (push, analytics)
// read booking events from.
const EventQueueName = "booking.events"

// QueuePublisher publishes JSON payloads to a durable RabbitMQ queue.
// Messages are marked persistent so they survive broker restarts. Errors are
// logged and returned so callers can choose to ignore them without
// interrupting the request flow.
type QueuePublisher struct {
	url string
}

func NewQueuePublisher(url string) *QueuePublisher {
	return &QueuePublisher{url: url}
}

func (p *QueuePublisher) Publish(ctx context.Context, queue string, payload interface{}) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Error("rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare so the queue exists before the first consumer starts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Error("rabbitmq: queue declare failed", "queue", queue, "error", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("rabbitmq: marshal payload failed", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		logger.Error("rabbitmq: publish failed", "queue", queue, "error", err)
		return err
	}
	return nil
}
