// Courier — демо point-to-point обмена сообщениями через RabbitMQ.
//
// Использование:
//
//	courier [--url URL] [--queue NAME] <command> [flags]
//
// Команды:
//
//	publish   Отправить партию пронумерованных сообщений в очередь
//	consume   Принимать и выводить сообщения из очереди
//	journal   Показать последние записи журнала принятых сообщений
//
// Оба процесса не связаны напрямую: единственный общий ресурс —
// очередь на брокере.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/Courier/internal/cli"
	"github.com/shaiso/Courier/internal/mq"
	"github.com/shaiso/Courier/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:           "courier",
		Short:         "Courier — point-to-point messaging demo over RabbitMQ",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &cli.RootOpts{}
	rootCmd.PersistentFlags().StringVar(&opts.URL, "url", envOr("RABBITMQ_URL", mq.DefaultURL()), "Broker URL")
	rootCmd.PersistentFlags().StringVar(&opts.Queue, "queue", envOr("COURIER_QUEUE", mq.DefaultQueue), "Queue name shared by publisher and consumer")

	loggerFn := func() *slog.Logger { return logger }

	rootCmd.AddCommand(
		cli.NewPublishCmd(opts, loggerFn),
		cli.NewConsumeCmd(opts, loggerFn),
		cli.NewJournalCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// envOr возвращает значение переменной окружения или fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
