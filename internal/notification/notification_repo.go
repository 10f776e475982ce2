package notification

import (
	"context"
	"database/sql"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, items []Notification) error
	FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return connection.Conn(ctx, r.db, r.tx).Create(n).Error
}

func (r *repository) CreateBatch(ctx context.Context, items []Notification) error {
	if len(items) == 0 {
		return nil
	}
	return connection.Conn(ctx, r.db, r.tx).Create(&items).Error
}

func (r *repository) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	var items []Notification
	q := connection.Conn(ctx, r.db, r.tx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}
