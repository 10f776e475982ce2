package sla

import (
	"context"
	"database/sql"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=sla_repo.go -destination=mock/sla_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Metric) error
	FindByLeaveID(ctx context.Context, leaveID string) (*Metric, error)
	Close(ctx context.Context, leaveID string, respondedAt time.Time, result Result) (bool, error)
	DeleteByLeaveID(ctx context.Context, leaveID string) error
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

func (r *repository) Create(ctx context.Context, m *Metric) error {
	return r.conn(ctx).Create(m).Error
}

func (r *repository) FindByLeaveID(ctx context.Context, leaveID string) (*Metric, error) {
	var m Metric
	err := r.conn(ctx).First(&m, "leave_request_id = ?", leaveID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Close records the review outcome. It only touches a metric that is still
// pending and reports whether a row was written.
func (r *repository) Close(ctx context.Context, leaveID string, respondedAt time.Time, result Result) (bool, error) {
	res := r.conn(ctx).
		Model(&Metric{}).
		Where("leave_request_id = ? AND status = ?", leaveID, StatusPending).
		Updates(map[string]any{
			"status":              result.Status,
			"responded_at":        respondedAt,
			"response_time_hours": result.ResponseTimeHours,
			"sla_score":           result.Score,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) DeleteByLeaveID(ctx context.Context, leaveID string) error {
	return r.conn(ctx).Where("leave_request_id = ?", leaveID).Delete(&Metric{}).Error
}
