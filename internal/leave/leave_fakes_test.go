package leave_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/leave"
	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka"
	"github.com/roma-frontend/hr-tracker-sub000/internal/notification"
	"github.com/roma-frontend/hr-tracker-sub000/internal/sla"
	"github.com/roma-frontend/hr-tracker-sub000/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore backs the fake repositories so workflow tests can observe every
// side effect of a leave operation.
type memStore struct {
	mu            sync.Mutex
	leaves        map[string]leave.Leave
	users         map[string]user.User
	notifications []notification.Notification
	metrics       map[string]sla.Metric
	balanceWrites int
}

func newMemStore() *memStore {
	return &memStore{
		leaves:  map[string]leave.Leave{},
		users:   map[string]user.User{},
		metrics: map[string]sla.Metric{},
	}
}

func (s *memStore) addUser(name, role string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@example.com",
		Role:         role,
		EmployeeType: user.EmployeeTypeStaff,
		IsActive:     true,
	}
	s.users[u.ID.String()] = u
	return u
}

// addPending stores a pending request plus its open SLA metric, submitted
// the given duration ago.
func (s *memStore) addPending(owner user.User, leaveType string, days float64, age time.Duration) leave.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	submitted := time.Now().UTC().Add(-age)
	l := leave.Leave{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Type:      leaveType,
		StartDate: "2024-07-01",
		EndDate:   "2024-07-03",
		Days:      days,
		Reason:    "trip",
		Status:    leave.StatusPending,
		CreatedAt: submitted,
		UpdatedAt: submitted,
	}
	s.leaves[l.ID.String()] = l
	s.metrics[l.ID.String()] = sla.Metric{
		ID:                 uuid.New(),
		LeaveRequestID:     l.ID,
		SubmittedAt:        submitted,
		TargetResponseTime: sla.DefaultTargetResponseHours,
		Status:             sla.StatusPending,
		CreatedAt:          submitted,
	}
	return l
}

func (s *memStore) leaveByID(id uuid.UUID) (leave.Leave, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leaves[id.String()]
	return l, ok
}

func (s *memStore) userByID(id uuid.UUID) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id.String()]
}

func (s *memStore) metric(leaveID uuid.UUID) (sla.Metric, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.metrics[leaveID.String()]
	return m, ok
}

func (s *memStore) notificationsFor(userID uuid.UUID) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) withUser(l leave.Leave) leave.Leave {
	if u, ok := s.users[l.UserID.String()]; ok {
		l.User = &leave.LeaveUser{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	if l.ReviewedBy != nil {
		if u, ok := s.users[l.ReviewedBy.String()]; ok {
			l.Reviewer = &leave.LeaveUser{ID: u.ID, Name: u.Name}
		}
	}
	return l
}

func (s *memStore) list(keep func(leave.Leave) bool) []leave.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]leave.Leave, 0, len(s.leaves))
	for _, l := range s.leaves {
		if keep(l) {
			out = append(out, s.withUser(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type memLeaveRepo struct{ s *memStore }

func (r memLeaveRepo) WithTx(*sql.Tx) leave.Repository { return r }

func (r memLeaveRepo) Create(_ context.Context, l *leave.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.leaves[l.ID.String()] = *l
	return nil
}

func (r memLeaveRepo) FindAll(context.Context) ([]leave.Leave, error) {
	return r.s.list(func(leave.Leave) bool { return true }), nil
}

func (r memLeaveRepo) FindByUser(_ context.Context, userID string) ([]leave.Leave, error) {
	return r.s.list(func(l leave.Leave) bool { return l.UserID.String() == userID }), nil
}

func (r memLeaveRepo) FindPending(context.Context) ([]leave.Leave, error) {
	return r.s.list(func(l leave.Leave) bool { return l.Status == leave.StatusPending }), nil
}

func (r memLeaveRepo) FindByID(_ context.Context, id string) (*leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	l = r.s.withUser(l)
	return &l, nil
}

func (r memLeaveRepo) FindByIDForUpdate(ctx context.Context, id string) (*leave.Leave, error) {
	return r.FindByID(ctx, id)
}

func (r memLeaveRepo) Update(_ context.Context, l *leave.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *l
	stored.User, stored.Reviewer = nil, nil
	r.s.leaves[l.ID.String()] = stored
	return nil
}

func (r memLeaveRepo) MarkReviewed(_ context.Context, id string, review leave.Review) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok || l.Status != leave.StatusPending {
		return false, nil
	}
	reviewer := review.ReviewerID
	reviewedAt := review.ReviewedAt
	l.Status = review.Status
	l.ReviewedBy = &reviewer
	l.ReviewComment = review.Comment
	l.ReviewedAt = &reviewedAt
	l.UpdatedAt = review.ReviewedAt
	r.s.leaves[id] = l
	return true, nil
}

func (r memLeaveRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leaves[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.leaves, id)
	return nil
}

func (r memLeaveRepo) CountByStatus(context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, l := range r.s.leaves {
		out[l.Status]++
	}
	return out, nil
}

func (r memLeaveRepo) CountOnLeave(_ context.Context, day string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, l := range r.s.leaves {
		if l.Status == leave.StatusApproved && l.CoversDate(day) {
			n++
		}
	}
	return n, nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) WithTx(*sql.Tx) user.Repository { return r }

func (r memUserRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID.String()] = *u
	return nil
}

func (r memUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memUserRepo) FindByIDForUpdate(ctx context.Context, id string) (*user.User, error) {
	return r.FindByID(ctx, id)
}

func (r memUserRepo) FindAll(context.Context) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r memUserRepo) FindByRole(_ context.Context, role string) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []user.User
	for _, u := range r.s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUserRepo) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID.String()] = *u
	return nil
}

func (r memUserRepo) SetLeaveBalance(_ context.Context, id string, kind user.BalanceKind, value float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v := value
	switch kind {
	case user.BalancePaid:
		u.PaidLeaveBalance = &v
	case user.BalanceSick:
		u.SickLeaveBalance = &v
	case user.BalanceFamily:
		u.FamilyLeaveBalance = &v
	}
	r.s.users[id] = u
	r.s.balanceWrites++
	return nil
}

type memNotificationRepo struct{ s *memStore }

func (r memNotificationRepo) WithTx(*sql.Tx) notification.Repository { return r }

func (r memNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r memNotificationRepo) CreateBatch(_ context.Context, items []notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, items...)
	return nil
}

func (r memNotificationRepo) FindByUser(_ context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.s.notifications {
		if n.UserID.String() == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

type memMetricRepo struct{ s *memStore }

func (r memMetricRepo) WithTx(*sql.Tx) sla.Repository { return r }

func (r memMetricRepo) Create(_ context.Context, m *sla.Metric) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.metrics[m.LeaveRequestID.String()] = *m
	return nil
}

func (r memMetricRepo) FindByLeaveID(_ context.Context, leaveID string) (*sla.Metric, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.metrics[leaveID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r memMetricRepo) Close(_ context.Context, leaveID string, respondedAt time.Time, result sla.Result) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.metrics[leaveID]
	if !ok || m.Status != sla.StatusPending {
		return false, nil
	}
	hours, score := result.ResponseTimeHours, result.Score
	m.Status = result.Status
	m.RespondedAt = &respondedAt
	m.ResponseTimeHours = &hours
	m.SLAScore = &score
	r.s.metrics[leaveID] = m
	return true, nil
}

func (r memMetricRepo) DeleteByLeaveID(_ context.Context, leaveID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.metrics, leaveID)
	return nil
}

func (s *memStore) put(l leave.Leave) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[l.ID.String()] = l
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListDue(context.Context, time.Time, int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(context.Context, string) error { return nil }

func (f *fakeOutbox) MarkFailed(context.Context, string, string, time.Time) error { return nil }

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}
