package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            "0b6c3f0e-5d0a-4a53-9c39-2f1f4f3b5a11",
		RequestID:     "req-1",
		AggregateType: "leave",
		AggregateID:   "6f1d0b7e-93a4-4c1b-8f0e-9d1c2b3a4f55",
		EventType:     "leave.approved",
		Topic:         "hr.leave.lifecycle.v1",
		Payload:       []byte(`{"id":"x"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		e := validEvent()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(e.ID, e.RequestID, e.AggregateType, e.AggregateID, e.EventType, e.Topic, e.Payload, e.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, kafka.NewOutboxRepository(db).Create(ctx, e))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("writes through the bound transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)
		assert.NoError(t, kafka.NewOutboxRepository(db).WithTx(tx).Create(ctx, validEvent()))
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid event is not written", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		e := validEvent()
		e.Topic = ""

		assert.EqualError(t, kafka.NewOutboxRepository(db).Create(ctx, e), "outbox topic is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListDue(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	next := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e-1", "req-1", "leave", "l-1", "leave.created", "hr.leave.lifecycle.v1", []byte(`{}`), "pending", 0, next).
		AddRow("e-2", "", "leave", "l-2", "leave.rejected", "hr.leave.lifecycle.v1", []byte(`{}`), "failed", 2, next)

	now := next.Add(time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, now, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListDue(ctx, now, 50)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "e-1", events[0].ID)
	assert.Equal(t, "leave.rejected", events[1].EventType)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.Equal(t, next, events[1].NextRetryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListDueQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).WillReturnError(errors.New("db down"))

	events, err := kafka.NewOutboxRepository(db).ListDue(context.Background(), time.Now(), 10)

	assert.Error(t, err)
	assert.Nil(t, events)
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	retryAt := time.Date(2024, 7, 1, 9, 0, 30, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("e-2", kafka.OutboxStatusFailed, "broker unavailable", retryAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("e-3", kafka.OutboxStatusFailed, strings.Repeat("x", 500), retryAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := kafka.NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(ctx, "e-1"))
	assert.NoError(t, repo.MarkFailed(ctx, "e-2", "broker unavailable", retryAt))
	assert.NoError(t, repo.MarkFailed(ctx, "e-3", strings.Repeat("x", 600), retryAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, 15*time.Second, kafka.RetryBackoff(0))
	assert.Equal(t, 15*time.Second, kafka.RetryBackoff(1))
	assert.Equal(t, 45*time.Second, kafka.RetryBackoff(3))
	assert.Equal(t, 150*time.Second, kafka.RetryBackoff(kafka.MaxOutboxRetries))
	assert.Equal(t, 150*time.Second, kafka.RetryBackoff(99))
}

func TestValidateOutboxEvent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *kafka.OutboxEvent)
		wantErr string
	}{
		{name: "valid", mutate: func(e *kafka.OutboxEvent) {}},
		{name: "missing id", mutate: func(e *kafka.OutboxEvent) { e.ID = "" }, wantErr: "outbox id is required"},
		{name: "missing aggregate", mutate: func(e *kafka.OutboxEvent) { e.AggregateID = "" }, wantErr: "outbox aggregate id is required"},
		{name: "empty payload", mutate: func(e *kafka.OutboxEvent) { e.Payload = nil }, wantErr: "outbox payload is required"},
		{name: "unknown status", mutate: func(e *kafka.OutboxEvent) { e.Status = "queued" }, wantErr: "invalid outbox status: queued"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)

			err := kafka.ValidateOutboxEvent(e)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
