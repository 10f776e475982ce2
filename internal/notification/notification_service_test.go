package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/notification"
	notificationMock "github.com/roma-frontend/hr-tracker-sub000/internal/notification/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNotificationService_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success unread only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo)

		userID := uuid.New()
		leaveID := uuid.New().String()
		repo.EXPECT().
			FindByUser(ctx, userID.String(), true).
			Return([]notification.Notification{
				{
					ID:        uuid.New(),
					UserID:    userID,
					Type:      notification.TypeLeaveApproved,
					Title:     "Leave approved",
					Message:   "Your paid leave was approved by Ada",
					RelatedID: &leaveID,
					CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				},
			}, nil)

		resp, err := svc.ListForUser(ctx, userID.String(), true)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, notification.TypeLeaveApproved, resp[0].Type)
		assert.Equal(t, leaveID, *resp[0].RelatedID)
		assert.Equal(t, "2024-03-01 09:00:00", resp[0].CreatedAt)
	})

	t.Run("negative invalid user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := notification.NewService(notificationMock.NewMockRepository(ctrl))

		_, err := svc.ListForUser(ctx, "", false)

		assert.Error(t, err)
	})

	t.Run("negative repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo)
		userID := uuid.New().String()

		repo.EXPECT().FindByUser(ctx, userID, false).Return(nil, errors.New("db down"))

		_, err := svc.ListForUser(ctx, userID, false)

		assert.EqualError(t, err, "db down")
	})
}
