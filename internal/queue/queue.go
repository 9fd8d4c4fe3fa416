package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

// EventPublisher pushes protocol events onto the message bus for downstream
// consumers (indexers, notification services).
type EventPublisher interface {
	Publish(ctx context.Context, eventType types.EventType, payload any) error
	Shutdown()
}

type QueueManager struct {
	cfg     *config.QueueConfig
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	conn, err := amqp.Dial(cfg.ConnectionUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.ExchangeName, err)
	}

	return &QueueManager{
		cfg:     cfg,
		conn:    conn,
		channel: channel,
	}, nil
}

// Publish serializes the payload as JSON and routes it on the exchange using
// the event type as the routing key.
func (qm *QueueManager) Publish(ctx context.Context, eventType types.EventType, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	err = qm.channel.PublishWithContext(
		publishCtx,
		qm.cfg.ExchangeName,
		eventType.String(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Type:         eventType.String(),
			Body:         body,
		},
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}

	log.Ctx(ctx).Debug().
		Str("event_type", eventType.String()).
		Msg("Published event to queue")

	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	if qm.channel != nil {
		if err := qm.channel.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close queue channel")
		}
	}
	if qm.conn != nil {
		if err := qm.conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close queue connection")
		}
	}
}
