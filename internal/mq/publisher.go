package mq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует текстовые сообщения в очередь RabbitMQ.
//
// Публикация идёт в default exchange с именем очереди в качестве
// routing key. Тело сообщения передаётся как есть; MessageId и
// Timestamp выставляются в AMQP properties и получателем не читаются.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует тело сообщения в указанную очередь.
func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		msgID := uuid.New().String()

		err := ch.PublishWithContext(
			ctx,
			"",    // default exchange
			queue, // routing key = имя очереди
			false,
			false,
			amqp.Publishing{
				ContentType:  "text/plain",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msgID,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to queue %s: %w", queue, err)
		}

		publishedTotal.Inc()

		p.logger.Debug("published message",
			"queue", queue,
			"message_id", msgID,
			"bytes", len(body),
		)

		return nil
	})
}
