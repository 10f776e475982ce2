package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypePaid   = "paid"
	TypeUnpaid = "unpaid"
	TypeSick   = "sick"
	TypeFamily = "family"
	TypeDoctor = "doctor"
)

const dateLayout = "2006-01-02"

type Leave struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_leave_requests_user_id"`
	Type          string     `gorm:"column:type;type:varchar(20);not null"`
	StartDate     string     `gorm:"column:start_date;type:varchar(10);not null"`
	EndDate       string     `gorm:"column:end_date;type:varchar(10);not null"`
	Days          float64    `gorm:"column:days;type:numeric(6,2);not null"`
	Reason        string     `gorm:"column:reason;type:text;not null"`
	Comment       *string    `gorm:"column:comment;type:text"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_leave_requests_status"`
	ReviewedBy    *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewComment *string    `gorm:"column:review_comment;type:text"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`

	User     *LeaveUser `gorm:"foreignKey:UserID;references:ID"`
	Reviewer *LeaveUser `gorm:"foreignKey:ReviewedBy;references:ID"`
}

func (Leave) TableName() string {
	return "leave_requests"
}

// CoversDate reports whether day (YYYY-MM-DD) falls inside the request's
// range, both ends inclusive. ISO dates compare correctly as strings.
func (l Leave) CoversDate(day string) bool {
	return l.StartDate <= day && day <= l.EndDate
}

// LeaveUser is the read-only slice of a user joined onto leave listings.
type LeaveUser struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	Department   string    `gorm:"column:department"`
	EmployeeType string    `gorm:"column:employee_type"`
	AvatarURL    *string   `gorm:"column:avatar_url"`
}

func (LeaveUser) TableName() string {
	return "users"
}
