package sla

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusOnTime   = "on_time"
	StatusBreached = "breached"
)

// DefaultTargetResponseHours is the review window applied to new requests.
const DefaultTargetResponseHours = 24.0

// Metric tracks how quickly one leave request was reviewed. The responded
// fields stay nil until the request leaves pending and are written once.
type Metric struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID     uuid.UUID  `gorm:"column:leave_request_id;type:uuid;not null;uniqueIndex:uq_sla_metrics_leave_request"`
	SubmittedAt        time.Time  `gorm:"column:submitted_at;not null"`
	TargetResponseTime float64    `gorm:"column:target_response_time;type:numeric(6,2);not null;default:24"`
	Status             string     `gorm:"column:status;type:varchar(20);not null;default:pending"`
	WarningTriggered   bool       `gorm:"column:warning_triggered;not null;default:false"`
	CriticalTriggered  bool       `gorm:"column:critical_triggered;not null;default:false"`
	RespondedAt        *time.Time `gorm:"column:responded_at"`
	ResponseTimeHours  *float64   `gorm:"column:response_time_hours;type:numeric(8,1)"`
	SLAScore           *float64   `gorm:"column:sla_score;type:numeric(4,1)"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Metric) TableName() string {
	return "sla_metrics"
}
