package slaerrors

import (
	"net/http"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/apperror"
)

var (
	ErrMetricNotFound = apperror.New(
		apperror.CodeNotFound,
		"SLA metric not found",
		http.StatusNotFound,
	)

	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request ID",
		http.StatusBadRequest,
	)
)
