// Package messaging publishes data-change events to a RabbitMQ topic exchange.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the body of one published event.
type Message struct {
	Collection string      `json:"collection"`
	Operation  string      `json:"operation"`
	DocumentID string      `json:"documentId,omitempty"`
	Document   interface{} `json:"document,omitempty"`
	At         int64       `json:"at"`
}

// RoutingKey is "<collection>.<operation>", e.g. "videos.insert".
func RoutingKey(e events.DataChangeEvent) string {
	return e.CollectionName + "." + e.Operation
}

func NewMessage(e events.DataChangeEvent) Message {
	m := Message{
		Collection: e.CollectionName,
		Operation:  e.Operation,
		Document:   e.Document,
		At:         e.At.UnixMilli(),
	}
	if !e.DocumentID.IsZero() {
		m.DocumentID = e.DocumentID.Hex()
	}
	return m
}

type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	channel  *amqp.Channel
	exchange string
}

// NewPublisher dials url and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends e as persistent JSON. amqp channels are not safe for concurrent publishing.
func (p *Publisher) Publish(ctx context.Context, e events.DataChangeEvent) error {
	body, err := json.Marshal(NewMessage(e))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(e), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.At,
		Body:         body,
	})
}

// Handler adapts the publisher to the in-process event fan-out.
func (p *Publisher) Handler() events.DataChangeHandler {
	return func(ctx context.Context, e events.DataChangeEvent) {
		if err := p.Publish(ctx, e); err != nil {
			logger.WithCollection(e.CollectionName).WithError(err).Warn("event publish failed")
		}
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	return p.conn.Close()
}
