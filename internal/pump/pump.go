package pump

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Courier/internal/schedule"
)

// Значения по умолчанию для партии.
const (
	DefaultCount    = 10
	DefaultInterval = time.Second
)

// Publisher — то, что умеет публиковать тело сообщения в очередь.
// Реализуется mq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// Config — конфигурация Pump.
type Config struct {
	// Queue — имя очереди.
	Queue string

	// Count — количество сообщений в партии. 0 — значение по умолчанию.
	Count int

	// Interval — пауза между отправками. 0 — значение по умолчанию.
	Interval time.Duration

	// CronExpr — cron-выражение для повторения партии.
	// Пустая строка — одна партия и выход.
	CronExpr string

	// Publisher — публикатор сообщений.
	Publisher Publisher

	// Logger — логгер.
	Logger *slog.Logger
}

// Pump публикует партии пронумерованных сообщений.
type Pump struct {
	queue    string
	count    int
	interval time.Duration
	cronExpr string
	pub      Publisher
	logger   *slog.Logger
}

// New создаёт новый Pump.
func New(cfg Config) *Pump {
	count := cfg.Count
	if count <= 0 {
		count = DefaultCount
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Pump{
		queue:    cfg.Queue,
		count:    count,
		interval: interval,
		cronExpr: cfg.CronExpr,
		pub:      cfg.Publisher,
		logger:   cfg.Logger,
	}
}

// Body возвращает тело сообщения с 1-based порядковым номером.
func Body(i int) []byte {
	return []byte(fmt.Sprintf("Message %d", i))
}

// Run публикует партию сообщений. При заданном CronExpr повторяет партию
// на каждое срабатывание расписания до отмены контекста.
func (p *Pump) Run(ctx context.Context) error {
	if p.cronExpr == "" {
		return p.runBatch(ctx)
	}

	for {
		next, err := schedule.NextFire(p.cronExpr, time.Now())
		if err != nil {
			return err
		}

		p.logger.Info("next batch scheduled", "queue", p.queue, "at", next)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
		}

		if err := p.runBatch(ctx); err != nil {
			return err
		}
	}
}

// runBatch публикует одну партию: сообщение i отправляется строго
// раньше сообщения i+1.
func (p *Pump) runBatch(ctx context.Context) error {
	for i := 1; i <= p.count; i++ {
		body := Body(i)

		if err := p.pub.Publish(ctx, p.queue, body); err != nil {
			return fmt.Errorf("publish message %d: %w", i, err)
		}

		p.logger.Info("sent message", "queue", p.queue, "body", string(body))

		if i < p.count {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.interval):
			}
		}
	}

	p.logger.Info("batch complete", "queue", p.queue, "count", p.count)
	return nil
}
