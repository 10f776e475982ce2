package usererrors

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

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of admin, supervisor, employee",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeType = apperror.New(
		apperror.CodeInvalidInput,
		"employee_type must be staff or contractor",
		http.StatusBadRequest,
	)

	ErrInvalidBalance = apperror.New(
		apperror.CodeInvalidInput,
		"leave balance cannot be negative",
		http.StatusBadRequest,
	)

	ErrInvalidBalanceKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave balance kind",
		http.StatusBadRequest,
	)
)
