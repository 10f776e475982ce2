package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByUser(ctx context.Context, userID string) ([]Leave, error)
	FindPending(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	MarkReviewed(ctx context.Context, id string, review Review) (bool, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountOnLeave(ctx context.Context, day string) (int64, error)
}

// Review is the pending -> approved|rejected transition written by MarkReviewed.
type Review struct {
	Status     string
	ReviewerID uuid.UUID
	Comment    *string
	ReviewedAt time.Time
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

func (r *repository) withJoins(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("User").
		Preload("Reviewer").
		Order("created_at DESC")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.withJoins(ctx).Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.withJoins(ctx).
		Where("user_id = ?", userID).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPending(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.withJoins(ctx).
		Where("status = ?", StatusPending).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("User").
		Preload("Reviewer").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate row-locks the leave until the surrounding tx ends.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Save(l).Error
}

// MarkReviewed is a compare-and-set on status = pending. It reports false
// when another transaction reviewed the row first.
func (r *repository) MarkReviewed(ctx context.Context, id string, review Review) (bool, error) {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":         review.Status,
			"reviewed_by":    review.ReviewerID,
			"review_comment": review.Comment,
			"reviewed_at":    review.ReviewedAt,
			"updated_at":     review.ReviewedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Leave{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) CountOnLeave(ctx context.Context, day string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count, err
}
