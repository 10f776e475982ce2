package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/roma-frontend/hr-tracker-sub000/internal/user"
	usererrors "github.com/roma-frontend/hr-tracker-sub000/internal/user/errors"
	userMock "github.com/roma-frontend/hr-tracker-sub000/internal/user/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (user.Service, *userMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := userMock.NewMockRepository(ctrl)
	return user.NewService(repo), repo
}

func floatPtr(v float64) *float64 { return &v }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success applies default balances", func(t *testing.T) {
		svc, repo := setupServiceTest(t)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "ada@example.com", u.Email)
				assert.Equal(t, user.EmployeeTypeStaff, u.EmployeeType)
				assert.True(t, u.IsActive)
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Name:  " Ada ",
			Email: "Ada@Example.com",
			Role:  user.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Ada", resp.Name)
		assert.Equal(t, user.BalanceResponse{Paid: 24, Sick: 10, Family: 5}, resp.Balances)
	})

	t.Run("negative invalid role", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.Create(ctx, user.CreateUserRequest{Name: "x", Email: "x@example.com", Role: "owner"})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("negative balance rejected", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.Create(ctx, user.CreateUserRequest{
			Name:             "x",
			Email:            "x@example.com",
			Role:             user.RoleEmployee,
			PaidLeaveBalance: floatPtr(-1),
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidBalance)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc, repo := setupServiceTest(t)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})

		_, err := svc.Create(ctx, user.CreateUserRequest{Name: "x", Email: "x@example.com", Role: user.RoleAdmin})

		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New()

		repo.EXPECT().
			FindByID(ctx, id.String()).
			Return(&user.User{ID: id, Name: "Ada", Role: user.RoleSupervisor}, nil)

		resp, err := svc.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, user.RoleSupervisor, resp.Role)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New().String()

		repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_GetBalances(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupServiceTest(t)
	id := uuid.New()

	repo.EXPECT().
		FindByID(ctx, id.String()).
		Return(&user.User{ID: id, PaidLeaveBalance: floatPtr(3.5)}, nil)

	resp, err := svc.GetBalances(ctx, id.String())

	assert.NoError(t, err)
	assert.Equal(t, 3.5, resp.Paid)
	assert.Equal(t, user.DefaultSickLeaveBalance, resp.Sick)
	assert.Equal(t, user.DefaultFamilyLeaveBalance, resp.Family)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success edits balance directly", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New()
		existing := &user.User{ID: id, Name: "Ada", Role: user.RoleEmployee, EmployeeType: user.EmployeeTypeStaff}

		repo.EXPECT().FindByID(ctx, id.String()).Return(existing, nil)
		repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, 12.0, *u.SickLeaveBalance)
				return nil
			})

		resp, err := svc.Update(ctx, id.String(), user.UpdateUserRequest{SickLeaveBalance: floatPtr(12)})

		assert.NoError(t, err)
		assert.Equal(t, 12.0, resp.Balances.Sick)
		assert.Equal(t, "Ada", resp.Name)
	})

	t.Run("negative invalid employee type", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New()
		kind := "intern"

		repo.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id}, nil)

		_, err := svc.Update(ctx, id.String(), user.UpdateUserRequest{EmployeeType: &kind})

		assert.ErrorIs(t, err, usererrors.ErrInvalidEmployeeType)
	})

	t.Run("negative persist failure is passed through", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New()
		dbErr := errors.New("connection reset")

		repo.EXPECT().FindByID(ctx, id.String()).Return(&user.User{ID: id}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(dbErr)

		_, err := svc.Update(ctx, id.String(), user.UpdateUserRequest{})

		assert.ErrorIs(t, err, dbErr)
	})
}
