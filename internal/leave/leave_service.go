package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/events"
	leaveerrors "github.com/roma-frontend/hr-tracker-sub000/internal/leave/errors"
	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka"
	"github.com/roma-frontend/hr-tracker-sub000/internal/notification"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/contextutil"
	"github.com/roma-frontend/hr-tracker-sub000/internal/sla"
	"github.com/roma-frontend/hr-tracker-sub000/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatsCacheKeyPrefix  = "leaves:stats:"
	DefaultStatsCacheTTL = time.Minute

	// Used in review notifications when the reviewer cannot be resolved.
	fallbackReviewerName = "Admin"
)

func StatsCacheKey(day string) string {
	return StatsCacheKeyPrefix + day
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actor Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
	GetStats(ctx context.Context) (LeaveStats, error)
}

type Options struct {
	SLATargetHours float64
	StatsCacheTTL  time.Duration
}

type service struct {
	db            *sql.DB
	repo          Repository
	users         user.Repository
	notifications notification.Repository
	metrics       sla.Repository
	outbox        kafka.OutboxRepository
	rdb           *redis.Client
	sf            *singleflight.Group
	statsGen      atomic.Uint64
	opts          Options
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	notifications notification.Repository,
	metrics sla.Repository,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, users, notifications, metrics, nil, rdb, opts, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	notifications notification.Repository,
	metrics sla.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.SLATargetHours <= 0 {
		opts.SLATargetHours = sla.DefaultTargetResponseHours
	}
	if opts.StatsCacheTTL <= 0 {
		opts.StatsCacheTTL = DefaultStatsCacheTTL
	}
	return &service{
		db:            db,
		repo:          repo,
		users:         users,
		notifications: notifications,
		metrics:       metrics,
		outbox:        outboxRepo,
		rdb:           rdb,
		sf:            &singleflight.Group{},
		opts:          opts,
		logger:        l,
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = actor.ID
	}
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.ID),
		zap.String("user_id", userID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if userID != actor.ID && actor.Role != user.RoleAdmin {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	if err := validateFields(req.Type, req.StartDate, req.EndDate, req.Days, req.Reason); err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	utx := s.users.WithTx(tx)

	owner, err := utx.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("create leave user not found", zap.String("user_id", userID))
			return LeaveResponse{}, leaveerrors.ErrUserNotFound
		}
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	l := &Leave{
		ID:        uuid.New(),
		UserID:    ownerID,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Days:      req.Days,
		Reason:    strings.TrimSpace(req.Reason),
		Comment:   req.Comment,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	recipients, err := s.reviewers(ctx, utx, owner.ID)
	if err != nil {
		s.logger.Error("create leave reviewer lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	relatedID := l.ID.String()
	batch := make([]notification.Notification, 0, len(recipients))
	for _, r := range recipients {
		batch = append(batch, notification.Notification{
			ID:        uuid.New(),
			UserID:    r.ID,
			Type:      notification.TypeLeaveRequest,
			Title:     "New Leave Request",
			Message:   fmt.Sprintf("%s requested %s leave from %s to %s (%s days)", owner.Name, l.Type, l.StartDate, l.EndDate, formatDays(l.Days)),
			RelatedID: &relatedID,
			CreatedAt: now,
		})
	}
	if err := s.notifications.WithTx(tx).CreateBatch(ctx, batch); err != nil {
		s.logger.Error("create leave notify failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.metrics.WithTx(tx).Create(ctx, &sla.Metric{
		ID:                 uuid.New(),
		LeaveRequestID:     l.ID,
		SubmittedAt:        now,
		TargetResponseTime: s.opts.SLATargetHours,
		Status:             sla.StatusPending,
		CreatedAt:          now,
	}); err != nil {
		s.logger.Error("create leave sla open failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, events.LeaveCreated, *l, actor.ID, nil); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.Int("notified", len(batch)),
	)

	l.User = toLeaveUser(owner)
	return mapToResponse(*l), nil
}

// reviewers returns every admin and supervisor once, minus the requester.
func (s *service) reviewers(ctx context.Context, users user.Repository, requesterID uuid.UUID) ([]user.User, error) {
	admins, err := users.FindByRole(ctx, user.RoleAdmin)
	if err != nil {
		return nil, err
	}
	supervisors, err := users.FindByRole(ctx, user.RoleSupervisor)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(admins)+len(supervisors))
	out := make([]user.User, 0, len(admins)+len(supervisors))
	for _, u := range append(admins, supervisors...) {
		if u.ID == requesterID {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out, nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}
	leaves, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !user.IsReviewer(actor.Role) && l.UserID.String() != actor.ID {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("actor_role", actor.Role),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if actor.Role != user.RoleAdmin {
		if l.UserID.String() != actor.ID {
			return LeaveResponse{}, leaveerrors.ErrForbidden
		}
		if l.Status != StatusPending {
			s.logger.Warn("update leave not editable",
				zap.String("leave_id", id),
				zap.String("status", l.Status),
			)
			return LeaveResponse{}, leaveerrors.ErrLeaveNotEditable
		}
	}
	// The balance was settled against the reviewed type and days.
	if l.Status != StatusPending && req.changesEntitlement() {
		s.logger.Warn("update reviewed leave entitlement rejected",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrReviewedLeaveLocked
	}

	if req.Type != nil {
		l.Type = *req.Type
	}
	if req.StartDate != nil {
		l.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		l.EndDate = *req.EndDate
	}
	if req.Days != nil {
		l.Days = *req.Days
	}
	if req.Reason != nil {
		l.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.Comment != nil {
		l.Comment = req.Comment
	}
	if err := validateFields(l.Type, l.StartDate, l.EndDate, l.Days, l.Reason); err != nil {
		s.logger.Warn("update leave validation failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	l.UpdatedAt = time.Now().UTC()

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueue(ctx, tx, events.LeaveUpdated, *l, actor.ID, nil); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.invalidateStats(ctx)

	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, req.Comment)
}

func (s *service) Reject(ctx context.Context, actor Actor, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, actor, id, StatusRejected, req.Comment)
}

// review moves a pending request to target. Steps run in one transaction:
// status patch, owner notification, balance deduction (approve only), SLA close.
func (s *service) review(ctx context.Context, actor Actor, id, target string, comment *string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("review leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("reviewer_id", actor.ID),
		zap.String("target_status", target),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	reviewerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	utx := s.users.WithTx(tx)
	mtx := s.metrics.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave not pending",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
			zap.String("target_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	now := time.Now().UTC()
	ok, err := qtx.MarkReviewed(ctx, id, Review{
		Status:     target,
		ReviewerID: reviewerID,
		Comment:    comment,
		ReviewedAt: now,
	})
	if err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		s.logger.Warn("review leave lost race", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}
	l.Status = target
	l.ReviewedBy = &reviewerID
	l.ReviewComment = comment
	l.ReviewedAt = &now
	l.UpdatedAt = now

	reviewerName := fallbackReviewerName
	if reviewer, err := utx.FindByID(ctx, actor.ID); err == nil && reviewer.Name != "" {
		reviewerName = reviewer.Name
	} else if err != nil {
		s.logger.Debug("review leave reviewer lookup failed", zap.String("reviewer_id", actor.ID), zap.Error(err))
	}

	var owner *user.User
	if target == StatusApproved {
		owner, err = utx.FindByIDForUpdate(ctx, l.UserID.String())
	} else {
		owner, err = utx.FindByID(ctx, l.UserID.String())
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrUserNotFound
		}
		return LeaveResponse{}, err
	}

	relatedID := l.ID.String()
	if err := s.notifications.WithTx(tx).Create(ctx, &notification.Notification{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Type:      reviewNotificationType(target),
		Title:     reviewNotificationTitle(target),
		Message:   reviewNotificationMessage(*l, target, reviewerName, comment),
		RelatedID: &relatedID,
		CreatedAt: now,
	}); err != nil {
		s.logger.Error("review leave notify failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if target == StatusApproved {
		if kind, ok := balanceKindFor(l.Type); ok {
			remaining := deductBalance(owner.Balance(kind), l.Days)
			if err := utx.SetLeaveBalance(ctx, owner.ID.String(), kind, remaining); err != nil {
				s.logger.Error("review leave balance update failed",
					zap.String("leave_id", id),
					zap.String("user_id", owner.ID.String()),
					zap.Error(err),
				)
				return LeaveResponse{}, err
			}
			s.logger.Debug("leave balance deducted",
				zap.String("user_id", owner.ID.String()),
				zap.String("kind", string(kind)),
				zap.Float64("remaining", remaining),
			)
		}
	}

	var score *float64
	metric, err := mtx.FindByLeaveID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Warn("review leave sla metric missing", zap.String("leave_id", id))
	case err != nil:
		return LeaveResponse{}, err
	default:
		result := sla.Evaluate(metric.SubmittedAt, now, metric.TargetResponseTime)
		closed, err := mtx.Close(ctx, id, now, result)
		if err != nil {
			s.logger.Error("review leave sla close failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if closed {
			score = &result.Score
		}
	}

	if err := s.enqueue(ctx, tx, reviewEventType(target), *l, actor.ID, score); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.invalidateStats(ctx)

	fields := []zap.Field{
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", target),
	}
	if score != nil {
		fields = append(fields, zap.Float64("sla_score", *score))
	}
	s.logger.Info("review leave success", fields...)

	l.User = toLeaveUser(owner)
	resp := mapToResponse(*l)
	resp.ReviewerName = reviewerName
	return resp, nil
}

// Delete hard-deletes the request and its SLA metric. Notifications are kept.
func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	s.logger.Debug("delete leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if actor.Role != user.RoleAdmin && (l.UserID.String() != actor.ID || l.Status != StatusPending) {
		s.logger.Warn("delete leave forbidden",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.ID),
			zap.String("status", l.Status),
		)
		return leaveerrors.ErrForbidden
	}

	if err := s.metrics.WithTx(tx).DeleteByLeaveID(ctx, id); err != nil {
		s.logger.Error("delete leave sla cleanup failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("delete leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := s.enqueue(ctx, tx, events.LeaveDeleted, *l, actor.ID, nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	s.invalidateStats(ctx)

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) GetStats(ctx context.Context) (LeaveStats, error) {
	day := time.Now().UTC().Format(dateLayout)
	cacheKey := StatsCacheKey(day)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stats LeaveStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return stats, nil
			}
		}
	}

	// Shared by all waiters; detached from the first caller's cancellation.
	sfCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		gen := s.statsGen.Load()
		counts, err := s.repo.CountByStatus(sfCtx)
		if err != nil {
			return nil, err
		}
		onLeave, err := s.repo.CountOnLeave(sfCtx, day)
		if err != nil {
			return nil, err
		}

		stats := LeaveStats{
			Pending:      counts[StatusPending],
			Approved:     counts[StatusApproved],
			Rejected:     counts[StatusRejected],
			OnLeaveToday: onLeave,
		}
		for _, n := range counts {
			stats.Total += n
		}

		s.storeStats(sfCtx, cacheKey, stats, gen)
		return stats, nil
	})
	if err != nil {
		s.logger.Error("leave stats failed", zap.Error(err))
		return LeaveStats{}, err
	}
	return v.(LeaveStats), nil
}

// storeStats caches stats counted under generation gen. A write committed in
// this process meanwhile bumps the generation and the store is skipped. Writes
// from other instances can still leave a stale entry until StatsCacheTTL.
func (s *service) storeStats(ctx context.Context, cacheKey string, stats LeaveStats, gen uint64) {
	if s.rdb == nil {
		return
	}
	if s.statsGen.Load() != gen {
		s.logger.Debug("leave stats changed while counting, cache store skipped", zap.String("key", cacheKey))
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, data, s.opts.StatsCacheTTL).Err(); err != nil {
		s.logger.Warn("leave stats cache store failed", zap.String("key", cacheKey), zap.Error(err))
		return
	}
	if s.statsGen.Load() != gen {
		s.rdb.Del(ctx, cacheKey)
	}
}

func (s *service) invalidateStats(ctx context.Context) {
	s.statsGen.Add(1)
	if s.rdb == nil {
		return
	}
	cacheKey := StatsCacheKey(time.Now().UTC().Format(dateLayout))
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave stats cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l Leave, actorID string, score *float64) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.LeaveLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		ActorID:    actorID,
		LeaveType:  l.Type,
		Status:     l.Status,
		Days:       l.Days,
		SLAScore:   score,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validateFields(leaveType, startDate, endDate string, days float64, reason string) error {
	switch leaveType {
	case TypePaid, TypeUnpaid, TypeSick, TypeFamily, TypeDoctor:
	default:
		return leaveerrors.ErrInvalidLeaveType
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return leaveerrors.ErrInvalidDateRange
	}
	if days <= 0 {
		return leaveerrors.ErrInvalidDays
	}
	if strings.TrimSpace(reason) == "" {
		return leaveerrors.ErrReasonRequired
	}
	return nil
}

func balanceKindFor(leaveType string) (user.BalanceKind, bool) {
	switch leaveType {
	case TypePaid:
		return user.BalancePaid, true
	case TypeSick:
		return user.BalanceSick, true
	case TypeFamily:
		return user.BalanceFamily, true
	default:
		return "", false
	}
}

// deductBalance returns max(0, balance - days).
func deductBalance(balance, days float64) float64 {
	remaining := decimal.NewFromFloat(balance).Sub(decimal.NewFromFloat(days))
	return decimal.Max(decimal.Zero, remaining).InexactFloat64()
}

func formatDays(days float64) string {
	return decimal.NewFromFloat(days).String()
}

func reviewNotificationType(status string) string {
	if status == StatusApproved {
		return notification.TypeLeaveApproved
	}
	return notification.TypeLeaveRejected
}

func reviewNotificationTitle(status string) string {
	if status == StatusApproved {
		return "Leave Approved"
	}
	return "Leave Rejected"
}

func reviewNotificationMessage(l Leave, status, reviewerName string, comment *string) string {
	msg := fmt.Sprintf("Your %s leave request (%s to %s) has been %s by %s", l.Type, l.StartDate, l.EndDate, status, reviewerName)
	if comment == nil || strings.TrimSpace(*comment) == "" {
		return msg
	}
	if status == StatusApproved {
		return msg + ". Comment: " + strings.TrimSpace(*comment)
	}
	return msg + ". Reason: " + strings.TrimSpace(*comment)
}

func reviewEventType(status string) string {
	if status == StatusApproved {
		return events.LeaveApproved
	}
	return events.LeaveRejected
}

func toLeaveUser(u *user.User) *LeaveUser {
	if u == nil {
		return nil
	}
	return &LeaveUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Department:   u.Department,
		EmployeeType: u.EmployeeType,
		AvatarURL:    u.AvatarURL,
	}
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		UserID:        l.UserID.String(),
		Type:          l.Type,
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		Days:          l.Days,
		Reason:        l.Reason,
		Comment:       l.Comment,
		Status:        l.Status,
		ReviewComment: l.ReviewComment,
		CreatedAt:     l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if l.User != nil {
		resp.UserName = l.User.Name
		resp.UserEmail = l.User.Email
		resp.UserDepartment = l.User.Department
		resp.UserEmployeeType = l.User.EmployeeType
		resp.UserAvatarURL = l.User.AvatarURL
	}
	if l.Reviewer != nil {
		resp.ReviewerName = l.Reviewer.Name
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
