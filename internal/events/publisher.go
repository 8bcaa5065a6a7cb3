package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers domain events to a durable RabbitMQ queue. Delivery is
// best-effort at-least-once: messages are published persistent, but a failed
// publish is the caller's to log, never to retry at the cost of the request.
type Publisher struct {
	conn  *amqp.Connection
	chn   *amqp.Channel
	queue string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := chn.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		chn.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return &Publisher{conn: conn, chn: chn, queue: queue}, nil
}

// Publish sends event with data to the queue, stamped with the current time.
func (p *Publisher) Publish(ctx context.Context, event string, data any) error {
	body, err := json.Marshal(Envelope{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.chn.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if err := p.chn.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
