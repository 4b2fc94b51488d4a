package mq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

// fakeAcker считает вызовы подтверждений.
type fakeAcker struct {
	acks    int
	nacks   int
	rejects int

	lastRequeue bool
}

func (a *fakeAcker) Ack(tag uint64, multiple bool) error {
	a.acks++
	return nil
}

func (a *fakeAcker) Nack(tag uint64, multiple, requeue bool) error {
	a.nacks++
	a.lastRequeue = requeue
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	a.rejects++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConsumer(autoAck bool, handler Handler) *Consumer {
	return NewConsumer(nil, discardLogger(), ConsumerConfig{
		Queue:   "demo",
		Handler: handler,
		AutoAck: autoAck,
	})
}

func TestConsumer_ProcessDeliveries_Order(t *testing.T) {
	var got []string
	c := newTestConsumer(true, func(ctx context.Context, d *Delivery) error {
		got = append(got, string(d.Body))
		return nil
	})

	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{Body: []byte("Message 1")}
	deliveries <- amqp.Delivery{Body: []byte("Message 2")}
	deliveries <- amqp.Delivery{Body: []byte("Message 3")}
	close(deliveries)

	// Закрытый канал — ошибка: consume-цикл использует её как сигнал
	// к переподключению
	if err := c.processDeliveries(context.Background(), deliveries); err == nil {
		t.Fatal("expected error on closed deliveries channel")
	}

	want := []string{"Message 1", "Message 2", "Message 3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestConsumer_AutoAck_NeverTouchesAcknowledger(t *testing.T) {
	acker := &fakeAcker{}
	c := newTestConsumer(true, func(ctx context.Context, d *Delivery) error {
		return errors.New("handler failed")
	})

	// В auto-ack режиме подтверждение уже произошло на стороне брокера:
	// даже при ошибке handler'а ack/nack не вызываются
	c.handleDelivery(context.Background(), amqp.Delivery{
		Body:         []byte("Message 1"),
		Acknowledger: acker,
		DeliveryTag:  1,
	})

	if acker.acks != 0 || acker.nacks != 0 || acker.rejects != 0 {
		t.Errorf("expected no acknowledger calls, got acks=%d nacks=%d rejects=%d",
			acker.acks, acker.nacks, acker.rejects)
	}
}

func TestConsumer_ManualAck_AcksAfterHandler(t *testing.T) {
	acker := &fakeAcker{}
	c := newTestConsumer(false, func(ctx context.Context, d *Delivery) error {
		return nil
	})

	c.handleDelivery(context.Background(), amqp.Delivery{
		Body:         []byte("Message 1"),
		Acknowledger: acker,
		DeliveryTag:  1,
	})

	if acker.acks != 1 {
		t.Errorf("expected 1 ack, got %d", acker.acks)
	}
	if acker.nacks != 0 {
		t.Errorf("expected no nacks, got %d", acker.nacks)
	}
}

func TestConsumer_ManualAck_NacksOnHandlerError(t *testing.T) {
	acker := &fakeAcker{}
	c := newTestConsumer(false, func(ctx context.Context, d *Delivery) error {
		return errors.New("handler failed")
	})

	c.handleDelivery(context.Background(), amqp.Delivery{
		Body:         []byte("Message 1"),
		Acknowledger: acker,
		DeliveryTag:  1,
	})

	if acker.nacks != 1 {
		t.Fatalf("expected 1 nack, got %d", acker.nacks)
	}
	if acker.lastRequeue {
		t.Error("expected nack without requeue")
	}
}

func TestConsumer_ProcessDeliveries_GracefulStop(t *testing.T) {
	c := newTestConsumer(true, func(ctx context.Context, d *Delivery) error {
		t.Fatal("handler should not be called")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deliveries := make(chan amqp.Delivery)

	err := c.processDeliveries(ctx, deliveries)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConsumer_PrefetchDefault(t *testing.T) {
	c := NewConsumer(nil, discardLogger(), ConsumerConfig{Queue: "demo"})

	if c.prefetch != 1 {
		t.Errorf("expected default prefetch 1, got %d", c.prefetch)
	}
}
