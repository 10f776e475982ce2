package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeaveRequest  = "leave_request"
	TypeLeaveApproved = "leave_approved"
	TypeLeaveRejected = "leave_rejected"
)

type Notification struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_notifications_user_id"`
	Type      string    `gorm:"column:type;type:varchar(32);not null"`
	Title     string    `gorm:"column:title;type:varchar(255);not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false"`
	RelatedID *string   `gorm:"column:related_id;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
