package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/Courier/internal/mq"
	"github.com/shaiso/Courier/internal/pump"
	"github.com/shaiso/Courier/internal/schedule"
	"github.com/shaiso/Courier/internal/telemetry"
)

// NewPublishCmd создаёт команду publish.
//
// Команда подключается к брокеру с ограниченным числом попыток
// (брокер не считается готовым заранее), объявляет очередь и публикует
// партию пронумерованных сообщений с фиксированной паузой.
func NewPublishCmd(opts *RootOpts, loggerFn func() *slog.Logger) *cobra.Command {
	var count int
	var interval time.Duration
	var connectAttempts int
	var connectBackoff time.Duration
	var cronExpr string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a batch of numbered demo messages to the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := telemetry.WithQueue(loggerFn(), opts.Queue)
			ctx := cmd.Context()

			if cronExpr != "" {
				if err := schedule.Validate(cronExpr); err != nil {
					return err
				}
			}

			conn, err := mq.DialWithRetry(ctx, opts.URL, logger, connectAttempts, connectBackoff)
			if err != nil {
				return fmt.Errorf("broker not reachable: %w", err)
			}
			defer conn.Close()

			if err := mq.DeclareQueue(ctx, conn, opts.Queue); err != nil {
				return err
			}

			if metricsAddr != "" {
				go serveMetrics(metricsAddr, logger)
			}

			p := pump.New(pump.Config{
				Queue:     opts.Queue,
				Count:     count,
				Interval:  interval,
				CronExpr:  cronExpr,
				Publisher: mq.NewPublisher(conn, logger),
				Logger:    logger,
			})

			logger.Info("publishing messages", "count", count)
			return p.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&count, "count", pump.DefaultCount, "Number of messages in the batch")
	cmd.Flags().DurationVar(&interval, "interval", pump.DefaultInterval, "Pause between sends")
	cmd.Flags().IntVar(&connectAttempts, "connect-attempts", 30, "Connect attempts before giving up")
	cmd.Flags().DurationVar(&connectBackoff, "connect-backoff", 2*time.Second, "Pause between connect attempts")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Repeat the batch on a cron schedule (empty: one batch)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address for /healthz and /metrics (empty: disabled)")

	return cmd
}
