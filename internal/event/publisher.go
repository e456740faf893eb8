// Package event publishes form events to RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/pkg/config"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn       *amqp.Connection
	ch         channel
	exchange   string
	routingKey string
}

// Dial connects to cfg.URL and declares the durable direct exchange.
func Dial(cfg config.EventsConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.GetLogger().Info("RabbitMQ publisher connected", zap.String("exchange", cfg.Exchange))
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, routingKey: cfg.RoutingKey}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev form.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Entity + ".created",
		Body:         body,
	})
}

// Observer publishes every event. A failed publish is logged and counted;
// the submission that raised the event is not affected.
func (p *Publisher) Observer() form.Observer {
	return func(ctx context.Context, ev form.Event) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := p.Publish(ctx, ev); err != nil {
			prometheus.RecordEventPublish(ev.Entity, "failed")
			logger.FromContext(ctx).Warn("Failed to publish event",
				zap.String("entity", ev.Entity),
				zap.String("id", ev.ID.String()),
				zap.Error(err))
			return
		}
		prometheus.RecordEventPublish(ev.Entity, "published")
	}
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return fmt.Errorf("failed to close channel: %w", err)
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
		p.conn = nil
	}
	return nil
}
