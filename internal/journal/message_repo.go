package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record — запись журнала о принятом сообщении.
type Record struct {
	ID         uuid.UUID
	MessageID  string
	Body       string
	ReceivedAt time.Time
}

// MessageRepo — репозиторий журнала принятых сообщений.
type MessageRepo struct {
	pool *pgxpool.Pool
}

// NewMessageRepo создаёт новый MessageRepo.
func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Record записывает принятое сообщение в журнал.
func (r *MessageRepo) Record(ctx context.Context, messageID, body string) error {
	query := `
		INSERT INTO messages (id, message_id, body, received_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		uuid.New(),
		messageID,
		body,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// Recent возвращает последние limit записей журнала, новые первыми.
func (r *MessageRepo) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, message_id, body, received_at
		FROM messages
		ORDER BY received_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.MessageID, &rec.Body, &rec.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return records, nil
}
