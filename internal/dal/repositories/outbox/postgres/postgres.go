package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/outbox"
)

// PostgresOutboxRepository implements the outbox repository for PostgreSQL.
type PostgresOutboxRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOutboxRepository creates a new outbox repository.
func NewPostgresOutboxRepository(conn postgres.GenericConn) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert adds a new message to the outbox. Called inside the business
// transaction so the event is durable iff the order is.
func (r *PostgresOutboxRepository) Insert(ctx context.Context, msg outbox.Message) error {
	query, args, err := r.sb.Insert("outbox").
		Columns(
			"exchange_name",
			"routing_key",
			"payload",
			"content_type",
			"retry_count",
			"max_retries",
			"last_error",
			"created_at",
			"updated_at",
			"next_retry_at",
		).
		Values(
			msg.ExchangeName,
			msg.RoutingKey,
			msg.Payload,
			msg.ContentType,
			msg.RetryCount,
			msg.MaxRetries,
			msg.LastError,
			msg.CreatedAt,
			msg.UpdatedAt,
			msg.NextRetryAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}

	return nil
}

// GetPendingMessages retrieves messages that are ready for delivery.
func (r *PostgresOutboxRepository) GetPendingMessages(
	ctx context.Context,
	limit int,
) ([]outbox.Message, error) {
	query, args, err := r.sb.
		Select(
			"id",
			"exchange_name",
			"routing_key",
			"payload",
			"content_type",
			"retry_count",
			"max_retries",
			"last_error",
			"created_at",
			"updated_at",
			"next_retry_at",
		).
		From("outbox").
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		Where(sq.Expr("retry_count < max_retries")).
		OrderBy("next_retry_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}
	defer rows.Close()

	var messages []outbox.Message
	for rows.Next() {
		var msg outbox.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ExchangeName,
			&msg.RoutingKey,
			&msg.Payload,
			&msg.ContentType,
			&msg.RetryCount,
			&msg.MaxRetries,
			&msg.LastError,
			&msg.CreatedAt,
			&msg.UpdatedAt,
			&msg.NextRetryAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}

// Delete removes a message from the outbox after successful delivery.
func (r *PostgresOutboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("outbox").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete outbox message: %w", err)
	}

	return nil
}

// UpdateRetry updates retry count and error information.
func (r *PostgresOutboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	query, args, err := r.sb.Update("outbox").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}

	return nil
}
