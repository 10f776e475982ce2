package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEmployee   = "employee"

	EmployeeTypeStaff      = "staff"
	EmployeeTypeContractor = "contractor"
)

// Default entitlements used when a balance column is NULL.
const (
	DefaultPaidLeaveBalance   = 24.0
	DefaultSickLeaveBalance   = 10.0
	DefaultFamilyLeaveBalance = 5.0
)

type BalanceKind string

const (
	BalancePaid   BalanceKind = "paid"
	BalanceSick   BalanceKind = "sick"
	BalanceFamily BalanceKind = "family"
)

type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_email"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:employee;index:idx_users_role"`
	Department   string    `gorm:"column:department;type:varchar(255)"`
	EmployeeType string    `gorm:"column:employee_type;type:varchar(20);not null;default:staff"`
	AvatarURL    *string   `gorm:"column:avatar_url;type:text"`
	IsActive     bool      `gorm:"column:is_active;default:true"`

	PaidLeaveBalance   *float64 `gorm:"column:paid_leave_balance;type:numeric(6,2);default:24"`
	SickLeaveBalance   *float64 `gorm:"column:sick_leave_balance;type:numeric(6,2);default:10"`
	FamilyLeaveBalance *float64 `gorm:"column:family_leave_balance;type:numeric(6,2);default:5"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Balance returns the stored balance for kind, or its default when unset.
func (u User) Balance(kind BalanceKind) float64 {
	switch kind {
	case BalancePaid:
		return valueOr(u.PaidLeaveBalance, DefaultPaidLeaveBalance)
	case BalanceSick:
		return valueOr(u.SickLeaveBalance, DefaultSickLeaveBalance)
	case BalanceFamily:
		return valueOr(u.FamilyLeaveBalance, DefaultFamilyLeaveBalance)
	default:
		return 0
	}
}

// IsReviewer reports whether the role receives leave-request notifications.
func IsReviewer(role string) bool {
	return role == RoleAdmin || role == RoleSupervisor
}

func (k BalanceKind) column() (string, bool) {
	switch k {
	case BalancePaid:
		return "paid_leave_balance", true
	case BalanceSick:
		return "sick_leave_balance", true
	case BalanceFamily:
		return "family_leave_balance", true
	default:
		return "", false
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
