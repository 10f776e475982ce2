package user

import (
	"context"
	"strings"
	"time"

	usererrors "github.com/roma-frontend/hr-tracker-sub000/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	GetBalances(ctx context.Context, id string) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !validRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	employeeType := req.EmployeeType
	if employeeType == "" {
		employeeType = EmployeeTypeStaff
	}
	if !validEmployeeType(employeeType) {
		return UserResponse{}, usererrors.ErrInvalidEmployeeType
	}
	if negative(req.PaidLeaveBalance) || negative(req.SickLeaveBalance) || negative(req.FamilyLeaveBalance) {
		return UserResponse{}, usererrors.ErrInvalidBalance
	}

	u := &User{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Role:               req.Role,
		Department:         req.Department,
		EmployeeType:       employeeType,
		AvatarURL:          req.AvatarURL,
		IsActive:           true,
		PaidLeaveBalance:   balanceOrDefault(req.PaidLeaveBalance, DefaultPaidLeaveBalance),
		SickLeaveBalance:   balanceOrDefault(req.SickLeaveBalance, DefaultSickLeaveBalance),
		FamilyLeaveBalance: balanceOrDefault(req.FamilyLeaveBalance, DefaultFamilyLeaveBalance),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.String("email", u.Email), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested", zap.String("user_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = *req.Role
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.EmployeeType != nil {
		if !validEmployeeType(*req.EmployeeType) {
			return UserResponse{}, usererrors.ErrInvalidEmployeeType
		}
		u.EmployeeType = *req.EmployeeType
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if negative(req.PaidLeaveBalance) || negative(req.SickLeaveBalance) || negative(req.FamilyLeaveBalance) {
		return UserResponse{}, usererrors.ErrInvalidBalance
	}
	if req.PaidLeaveBalance != nil {
		u.PaidLeaveBalance = req.PaidLeaveBalance
	}
	if req.SickLeaveBalance != nil {
		u.SickLeaveBalance = req.SickLeaveBalance
	}
	if req.FamilyLeaveBalance != nil {
		u.FamilyLeaveBalance = req.FamilyLeaveBalance
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) GetBalances(ctx context.Context, id string) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}
	return mapToBalance(*u), nil
}

func validRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	default:
		return false
	}
}

func validEmployeeType(t string) bool {
	return t == EmployeeTypeStaff || t == EmployeeTypeContractor
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}

func balanceOrDefault(v *float64, def float64) *float64 {
	if v != nil {
		return v
	}
	return &def
}

func mapToBalance(u User) BalanceResponse {
	return BalanceResponse{
		Paid:   u.Balance(BalancePaid),
		Sick:   u.Balance(BalanceSick),
		Family: u.Balance(BalanceFamily),
	}
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		EmployeeType: u.EmployeeType,
		AvatarURL:    u.AvatarURL,
		IsActive:     u.IsActive,
		Balances:     mapToBalance(u),
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
