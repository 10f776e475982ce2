package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roma-frontend/hr-tracker-sub000/internal/bootstrap"
	"github.com/roma-frontend/hr-tracker-sub000/internal/events"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the slice of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

var errUnknownEventType = errors.New("unknown leave lifecycle event type")

func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		if err := HandleLeaveLifecycleMessage(ctx, msg, audit); err != nil {
			// poison messages are committed so the partition keeps moving
			log.Warn("skip leave lifecycle message",
				zap.Int64("offset", msg.Offset),
				zap.Int("partition", msg.Partition),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

// HandleLeaveLifecycleMessage decodes one lifecycle event and writes its audit entry.
func HandleLeaveLifecycleMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger) error {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("decode leave lifecycle event: %w", err)
	}

	message, ok := auditMessages[event.EventType]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownEventType, event.EventType)
	}

	rid := event.RequestID
	if rid == "" {
		rid = headerValue(msg, "request_id")
	}
	if rid != "" {
		ctx = contextutil.WithRequestID(ctx, rid)
	}

	meta := map[string]any{
		"leave_id":   event.LeaveID,
		"user_id":    event.UserID,
		"actor_id":   event.ActorID,
		"leave_type": event.LeaveType,
		"status":     event.Status,
		"days":       event.Days,
	}
	if event.SLAScore != nil {
		meta["sla_score"] = *event.SLAScore
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  strings.ToUpper(event.EventType),
		Message: message,
		Meta:    meta,
	})
	return nil
}

var auditMessages = map[string]string{
	events.LeaveCreated:  "Leave request submitted",
	events.LeaveApproved: "Leave request approved",
	events.LeaveRejected: "Leave request rejected",
	events.LeaveUpdated:  "Leave request updated",
	events.LeaveDeleted:  "Leave request deleted",
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
