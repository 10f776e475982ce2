package leave

// Actor is the authenticated caller of a leave operation.
type Actor struct {
	ID   string
	Role string
}

type CreateLeaveRequest struct {
	// UserID lets an admin file on behalf of someone else; defaults to the caller.
	UserID    string  `json:"user_id"`
	Type      string  `json:"type" binding:"required,oneof=paid unpaid sick family doctor"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Days      float64 `json:"days" binding:"required,gt=0"`
	Reason    string  `json:"reason" binding:"required"`
	Comment   *string `json:"comment"`
}

// UpdateLeaveRequest is a partial edit; status is never changed here.
type UpdateLeaveRequest struct {
	Type      *string  `json:"type" binding:"omitempty,oneof=paid unpaid sick family doctor"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Days      *float64 `json:"days" binding:"omitempty,gt=0"`
	Reason    *string  `json:"reason"`
	Comment   *string  `json:"comment"`
}

func (r UpdateLeaveRequest) changesEntitlement() bool {
	return r.Type != nil || r.StartDate != nil || r.EndDate != nil || r.Days != nil
}

type ReviewLeaveRequest struct {
	Comment *string `json:"comment"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          float64 `json:"days"`
	Reason        string  `json:"reason"`
	Comment       *string `json:"comment,omitempty"`
	Status        string  `json:"status"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	UserName         string  `json:"user_name,omitempty"`
	UserEmail        string  `json:"user_email,omitempty"`
	UserDepartment   string  `json:"user_department,omitempty"`
	UserEmployeeType string  `json:"user_employee_type,omitempty"`
	UserAvatarURL    *string `json:"user_avatar_url,omitempty"`
	ReviewerName     string  `json:"reviewer_name,omitempty"`
}

type LeaveStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
	OnLeaveToday int64 `json:"on_leave_today"`
}
