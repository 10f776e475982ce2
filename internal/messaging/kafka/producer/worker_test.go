package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/events"
	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka"
	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  map[string]string
	retryAt map[string]time.Time
}

func (f *fakeOutboxRepo) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(context.Context, kafka.OutboxEvent) error { return nil }

func (f *fakeOutboxRepo) ListDue(_ context.Context, _ time.Time, limit int) ([]kafka.OutboxEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id string, reason string, nextRetryAt time.Time) error {
	if f.failed == nil {
		f.failed = map[string]string{}
		f.retryAt = map[string]time.Time{}
	}
	f.failed[id] = reason
	f.retryAt[id] = nextRetryAt
	return nil
}

type fakeWriter struct {
	failKey  string
	messages []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "leave",
		AggregateID:   aggregateID,
		EventType:     events.LeaveApproved,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       []byte(`{"leave_id":"` + aggregateID + `"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func headerMap(m kafkago.Message) map[string]string {
	out := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("publishes and marks sent", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{outboxEvent("o1", "l1"), outboxEvent("o2", "l2")}}
		writer := &fakeWriter{}

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, logger, 10)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, []string{"o1", "o2"}, repo.sent)
		if assert.Len(t, writer.messages, 2) {
			m := writer.messages[0]
			assert.Equal(t, events.LeaveLifecycleTopic, m.Topic)
			assert.Equal(t, "l1", string(m.Key))
			assert.Equal(t, map[string]string{
				"event_type":     events.LeaveApproved,
				"aggregate_type": "leave",
				"request_id":     "req-o1",
			}, headerMap(m))
		}
	})

	t.Run("failed publish is rescheduled and batch continues", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{outboxEvent("o1", "l1"), outboxEvent("o2", "l2")}}
		repo.pending[0].RetryCount = 2
		writer := &fakeWriter{failKey: "l1"}

		before := time.Now().UTC()
		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, logger, 10)
		after := time.Now().UTC()

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"o2"}, repo.sent)
		assert.Equal(t, map[string]string{"o1": "broker unavailable"}, repo.failed)
		next := repo.retryAt["o1"]
		assert.False(t, next.Before(before.Add(45*time.Second)))
		assert.False(t, next.After(after.Add(45*time.Second)))
	})

	t.Run("respects batch limit", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{outboxEvent("o1", "l1"), outboxEvent("o2", "l2"), outboxEvent("o3", "l3")}}

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, logger, 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("list error is returned", func(t *testing.T) {
		repo := &fakeOutboxRepo{listErr: errors.New("db down")}

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, logger, 10)

		assert.EqualError(t, err, "db down")
		assert.Zero(t, sent)
	})

	t.Run("empty batch", func(t *testing.T) {
		sent, err := producer.ProcessPendingEvents(ctx, &fakeOutboxRepo{}, &fakeWriter{}, logger, 10)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, &fakeOutboxRepo{}, &fakeWriter{}, zap.NewNop(), producer.WorkerOptions{})
		close(done)
	}()
	<-done
}
