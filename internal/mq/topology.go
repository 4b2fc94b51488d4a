package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue — имя очереди демо по умолчанию. Обе стороны получают имя
// из конфигурации, а не из этой константы напрямую.
const DefaultQueue = "demo"

// DeclareQueue идемпотентно объявляет очередь. Publisher и consumer
// вызывают её с одинаковыми параметрами, поэтому повторное объявление
// не приводит ни к ошибке, ни к дублированию очереди.
func DeclareQueue(ctx context.Context, conn *Connection, name string) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		_, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
		return nil
	})
}
