package sink

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shaiso/Courier/internal/mq"
)

// Recorder — то, что умеет записывать принятое сообщение в журнал.
// Реализуется journal.MessageRepo.
type Recorder interface {
	Record(ctx context.Context, messageID, body string) error
}

// Sink обрабатывает принятые сообщения: валидирует тело как UTF-8,
// выводит его в лог и при подключённом журнале записывает туда.
type Sink struct {
	logger   *slog.Logger
	recorder Recorder
}

// New создаёт новый Sink. recorder может быть nil — тогда журнал
// не ведётся.
func New(logger *slog.Logger, recorder Recorder) *Sink {
	return &Sink{
		logger:   logger,
		recorder: recorder,
	}
}

// Handle обрабатывает одно доставленное сообщение.
func (s *Sink) Handle(ctx context.Context, d *mq.Delivery) error {
	if !utf8.Valid(d.Body) {
		return fmt.Errorf("message body is not valid UTF-8 (%d bytes)", len(d.Body))
	}

	body := string(d.Body)

	s.logger.Info("received message", "body", body)

	if s.recorder != nil {
		// Отказ журнала не должен ронять приём
		if err := s.recorder.Record(ctx, d.Raw.MessageId, body); err != nil {
			s.logger.Warn("journal insert failed", "error", err)
		}
	}

	return nil
}
