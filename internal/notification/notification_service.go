package notification

import (
	"context"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.InvalidField("user_id")
	}

	items, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
