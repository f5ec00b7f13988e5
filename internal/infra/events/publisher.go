// Package events публикует события бронирования в RabbitMQ для сервисов уведомлений.
// Ошибки публикации логируются и возвращаются, вызывающий код может их игнорировать
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel часть *amqp.Channel, нужная для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Publisher публикует события в topic exchange
// Нулевой channel отключает публикацию
type Publisher struct {
	channel  Channel
	exchange string
	log      Logger
}

// NewPublisher создает издателя событий. channel может быть nil (RabbitMQ выключен в конфиге)
func NewPublisher(channel Channel, exchange string, log Logger) *Publisher {
	return &Publisher{
		channel:  channel,
		exchange: exchange,
		log:      log,
	}
}

// Connection соединение с RabbitMQ и открытый канал
type Connection struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange: %w", err)
	}

	return &Connection{conn: conn, Channel: ch}, nil
}

// Close закрывает канал и соединение
func (c *Connection) Close() error {
	_ = c.Channel.Close()
	return c.conn.Close()
}

// PublishReservationCreated публикует reservation.created
func (p *Publisher) PublishReservationCreated(ctx context.Context, event ReservationCreated) error {
	return p.publish(ctx, RoutingReservationCreated, event)
}

// PublishReservationCancelled публикует reservation.cancelled
func (p *Publisher) PublishReservationCancelled(ctx context.Context, event ReservationCancelled) error {
	return p.publish(ctx, RoutingReservationCancelled, event)
}

// PublishRefundProcessed публикует refund.processed
func (p *Publisher) PublishRefundProcessed(ctx context.Context, event RefundProcessed) error {
	return p.publish(ctx, RoutingRefundProcessed, event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	if p == nil || p.channel == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("events: marshal %s failed: %v", routingKey, err)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		p.log.Warn("events: publish %s failed: %v", routingKey, err)
		return err
	}

	return nil
}
