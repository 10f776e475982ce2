package sla

import (
	"context"
	"errors"
	"time"

	slaerrors "github.com/roma-frontend/hr-tracker-sub000/internal/sla/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=sla_service.go -destination=mock/sla_service_mock.go -package=mock
type Service interface {
	GetByLeaveID(ctx context.Context, leaveID string) (MetricResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("sla.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sla.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByLeaveID(ctx context.Context, leaveID string) (MetricResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return MetricResponse{}, slaerrors.ErrInvalidLeaveID
	}

	m, err := s.repo.FindByLeaveID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MetricResponse{}, slaerrors.ErrMetricNotFound
		}
		s.logger.Error("get sla metric failed", zap.String("leave_id", leaveID), zap.Error(err))
		return MetricResponse{}, err
	}
	return MapToResponse(*m), nil
}

func MapToResponse(m Metric) MetricResponse {
	resp := MetricResponse{
		ID:                 m.ID.String(),
		LeaveRequestID:     m.LeaveRequestID.String(),
		SubmittedAt:        m.SubmittedAt.UTC().Format(time.RFC3339),
		TargetResponseTime: m.TargetResponseTime,
		Status:             m.Status,
		WarningTriggered:   m.WarningTriggered,
		CriticalTriggered:  m.CriticalTriggered,
		ResponseTimeHours:  m.ResponseTimeHours,
		SLAScore:           m.SLAScore,
	}
	if m.RespondedAt != nil {
		ts := m.RespondedAt.UTC().Format(time.RFC3339)
		resp.RespondedAt = &ts
	}
	return resp
}
