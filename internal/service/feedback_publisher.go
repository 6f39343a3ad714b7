// Package service publishes domain events to RabbitMQ. Publishing is
// best-effort: errors are logged and returned so callers can ignore them
// without interrupting the request that triggered the event.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pumpcare/connect/internal/queue"
)

// FeedbackEvents publishes feedback lifecycle events. It implements the
// publisher interface the villager handler consumes. URL is the broker
// address from config; it is fixed at startup like every other setting.
type FeedbackEvents struct {
	URL string
}

// PublishFeedbackCreated publishes a FeedbackCreatedEvent to the
// "feedback.created" queue. Messages are marked persistent so they survive
// broker restarts.
func (f FeedbackEvents) PublishFeedbackCreated(ctx context.Context, event queue.FeedbackCreatedEvent) error {
	conn, err := amqp.Dial(f.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"feedback.created", // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                 // default exchange
		"feedback.created", // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
