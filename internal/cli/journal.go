package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shaiso/Courier/internal/journal"
)

// recentLister — то, что умеет возвращать последние записи журнала.
// Реализуется journal.MessageRepo.
type recentLister interface {
	Recent(ctx context.Context, limit int) ([]journal.Record, error)
}

// NewJournalCmd создаёт команду journal: вывод последних записей
// журнала принятых сообщений. Требует настроенной журнальной базы
// (DB_URL), как и запись журнала на стороне consume.
func NewJournalCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent entries of the received-message journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := journal.NewPool(ctx)
			if err != nil {
				return fmt.Errorf("journal database not available: %w", err)
			}
			defer pool.Close()

			return showRecent(ctx, cmd.OutOrStdout(), journal.NewMessageRepo(pool), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of entries")

	return cmd
}

// showRecent выводит последние записи журнала таблицей.
func showRecent(ctx context.Context, w io.Writer, lister recentLister, limit int) error {
	records, err := lister.Recent(ctx, limit)
	if err != nil {
		return err
	}

	printRecords(w, records)
	return nil
}

// printRecords выводит записи журнала через tabwriter, новые первыми.
func printRecords(w io.Writer, records []journal.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := []string{"MESSAGE_ID", "BODY", "RECEIVED"}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.MessageID, rec.Body, rec.ReceivedAt.Format("2006-01-02 15:04:05"))
	}

	tw.Flush()
}
