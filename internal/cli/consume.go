package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Courier/internal/journal"
	"github.com/shaiso/Courier/internal/mq"
	"github.com/shaiso/Courier/internal/sink"
	"github.com/shaiso/Courier/internal/telemetry"
)

// NewConsumeCmd создаёт команду consume.
//
// Команда ждёт доступности брокера (неограниченный retry с фиксированной
// задержкой), объявляет ту же очередь и блокируется в цикле приёма,
// выводя каждое сообщение. Завершается по SIGINT/SIGTERM с кодом 0.
func NewConsumeCmd(opts *RootOpts, loggerFn func() *slog.Logger) *cobra.Command {
	var manualAck bool
	var prefetch int
	var connectBackoff time.Duration
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Receive and print messages from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := telemetry.WithQueue(loggerFn(), opts.Queue)
			ctx := cmd.Context()

			// Неограниченный retry: consumer может стартовать раньше брокера
			conn, err := mq.DialWithRetry(ctx, opts.URL, logger, 0, connectBackoff)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Info("consumer stopped before broker became available")
					return nil
				}
				return err
			}
			defer conn.Close()

			if err := mq.DeclareQueue(ctx, conn, opts.Queue); err != nil {
				return err
			}

			// Журнал опционален: без DB_URL приём работает как обычно
			var recorder sink.Recorder
			if os.Getenv("DB_URL") != "" {
				pool, err := journal.NewPool(ctx)
				if err != nil {
					logger.Warn("journal database not available, continuing without journal", "error", err)
				} else {
					defer pool.Close()
					recorder = journal.NewMessageRepo(pool)
					logger.Info("journal enabled")
				}
			}

			if metricsAddr != "" {
				go serveMetrics(metricsAddr, logger)
			}

			consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
				Queue:    opts.Queue,
				Handler:  sink.New(logger, recorder).Handle,
				AutoAck:  !manualAck,
				Prefetch: prefetch,
			})

			logger.Info("waiting for messages")

			err = consumer.Start(ctx)
			if errors.Is(err, context.Canceled) {
				// Штатное завершение по сигналу
				logger.Info("consumer stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&manualAck, "manual-ack", false, "Acknowledge after handling instead of on delivery")
	cmd.Flags().IntVar(&prefetch, "prefetch", 1, "Prefetch count (manual-ack mode only)")
	cmd.Flags().DurationVar(&connectBackoff, "connect-backoff", 2*time.Second, "Pause between connect attempts")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":8083", "Address for /healthz and /metrics (empty: disabled)")

	return cmd
}

// serveMetrics поднимает HTTP mux с /healthz и /metrics.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("http server error", "error", err)
	}
}
