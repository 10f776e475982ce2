package leaveerrors

import (
	"net/http"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Leave is not pending",
		http.StatusConflict,
	)
	ErrLeaveNotEditable = apperror.New(
		apperror.CodeForbidden,
		"Only pending leave requests can be edited",
		http.StatusForbidden,
	)
	ErrReviewedLeaveLocked = apperror.New(
		apperror.CodeInvalidState,
		"Type, dates and days of a reviewed leave request cannot be changed",
		http.StatusConflict,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to modify this leave request",
		http.StatusForbidden,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be one of paid, unpaid, sick, family, doctor",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
)
