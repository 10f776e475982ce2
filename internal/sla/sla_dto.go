package sla

type MetricResponse struct {
	ID                 string   `json:"id"`
	LeaveRequestID     string   `json:"leave_request_id"`
	SubmittedAt        string   `json:"submitted_at"`
	TargetResponseTime float64  `json:"target_response_time"`
	Status             string   `json:"status"`
	WarningTriggered   bool     `json:"warning_triggered"`
	CriticalTriggered  bool     `json:"critical_triggered"`
	RespondedAt        *string  `json:"responded_at,omitempty"`
	ResponseTimeHours  *float64 `json:"response_time_hours,omitempty"`
	SLAScore           *float64 `json:"sla_score,omitempty"`
}
