package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveCreated  = "leave_created"
	LeaveApproved = "leave_approved"
	LeaveRejected = "leave_rejected"
	LeaveUpdated  = "leave_updated"
	LeaveDeleted  = "leave_deleted"
)

// LeaveLifecycleEvent is published once per committed leave mutation.
type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	ActorID    string    `json:"actor_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	Days       float64   `json:"days"`
	SLAScore   *float64  `json:"sla_score,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
