package user

type CreateUserRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Role               string   `json:"role" binding:"required,oneof=admin supervisor employee"`
	Department         string   `json:"department"`
	EmployeeType       string   `json:"employee_type" binding:"omitempty,oneof=staff contractor"`
	AvatarURL          *string  `json:"avatar_url"`
	PaidLeaveBalance   *float64 `json:"paid_leave_balance" binding:"omitempty,gte=0"`
	SickLeaveBalance   *float64 `json:"sick_leave_balance" binding:"omitempty,gte=0"`
	FamilyLeaveBalance *float64 `json:"family_leave_balance" binding:"omitempty,gte=0"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name               *string  `json:"name"`
	Role               *string  `json:"role" binding:"omitempty,oneof=admin supervisor employee"`
	Department         *string  `json:"department"`
	EmployeeType       *string  `json:"employee_type" binding:"omitempty,oneof=staff contractor"`
	AvatarURL          *string  `json:"avatar_url"`
	IsActive           *bool    `json:"is_active"`
	PaidLeaveBalance   *float64 `json:"paid_leave_balance" binding:"omitempty,gte=0"`
	SickLeaveBalance   *float64 `json:"sick_leave_balance" binding:"omitempty,gte=0"`
	FamilyLeaveBalance *float64 `json:"family_leave_balance" binding:"omitempty,gte=0"`
}

type UserResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Department   string          `json:"department"`
	EmployeeType string          `json:"employee_type"`
	AvatarURL    *string         `json:"avatar_url,omitempty"`
	IsActive     bool            `json:"is_active"`
	Balances     BalanceResponse `json:"balances"`
	CreatedAt    string          `json:"created_at"`
}

type BalanceResponse struct {
	Paid   float64 `json:"paid"`
	Sick   float64 `json:"sick"`
	Family float64 `json:"family"`
}
