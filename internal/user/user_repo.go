package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/connection"
	usererrors "github.com/roma-frontend/hr-tracker-sub000/internal/user/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDForUpdate(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByRole(ctx context.Context, role string) ([]User, error)
	Update(ctx context.Context, u *User) error
	SetLeaveBalance(ctx context.Context, id string, kind BalanceKind, value float64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIDForUpdate row-locks the user until the surrounding tx ends.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByRole(ctx context.Context, role string) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("role = ?", role).
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}

func (r *repository) SetLeaveBalance(ctx context.Context, id string, kind BalanceKind, value float64) error {
	column, ok := kind.column()
	if !ok {
		return usererrors.ErrInvalidBalanceKind
	}

	res := r.conn(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       value,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
