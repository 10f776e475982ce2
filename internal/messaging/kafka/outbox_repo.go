package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const (
	// MaxOutboxRetries caps delivery attempts; rows past it stay failed for inspection.
	MaxOutboxRetries = 10
	retryStep        = 15 * time.Second
	maxErrorLength   = 500
)

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string, nextRetryAt time.Time) error
}

const (
	insertOutboxSQL = `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	listDueOutboxSQL = `
SELECT id::text, request_id, aggregate_type, aggregate_id::text, event_type,
	topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
	AND retry_count < $3
	AND (next_retry_at IS NULL OR next_retry_at <= $4)
ORDER BY created_at ASC
LIMIT $5`

	markSentOutboxSQL = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

	markFailedOutboxSQL = `
UPDATE outbox_events
SET status = $2, retry_count = retry_count + 1, error_message = $3,
	next_retry_at = $4, updated_at = NOW()
WHERE id = $1`
)

type sqlRunner interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) runner() sqlRunner {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	_, err := r.runner().ExecContext(ctx, insertOutboxSQL,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListDue returns pending and retryable events whose backoff elapsed at now,
// oldest first.
func (r *outboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error) {
	rows, err := r.runner().QueryContext(ctx, listDueOutboxSQL,
		OutboxStatusPending, OutboxStatusFailed, MaxOutboxRetries, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []OutboxEvent
	for rows.Next() {
		e, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, e)
	}
	return due, rows.Err()
}

func scanOutboxEvent(rows *sql.Rows) (OutboxEvent, error) {
	var e OutboxEvent
	err := rows.Scan(
		&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
		&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
	)
	return e, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.runner().ExecContext(ctx, markSentOutboxSQL, id, OutboxStatusSent)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string, nextRetryAt time.Time) error {
	_, err := r.runner().ExecContext(ctx, markFailedOutboxSQL,
		id, OutboxStatusFailed, truncateReason(reason), nextRetryAt,
	)
	return err
}

// RetryBackoff is the delay before delivery attempt n (1-based): 15s per
// attempt, capped at MaxOutboxRetries steps.
func RetryBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > MaxOutboxRetries {
		attempt = MaxOutboxRetries
	}
	return time.Duration(attempt) * retryStep
}

func truncateReason(reason string) string {
	if utf8.RuneCountInString(reason) <= maxErrorLength {
		return reason
	}
	return string([]rune(reason)[:maxErrorLength])
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.AggregateID == "" {
		return errors.New("outbox aggregate id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
