package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	// Token related errors
	ErrInvalidToken     = errors.New("invalid token")
	ErrInsufficientRole = errors.New("insufficient role")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Selection related errors
	ErrEditionNotFound    = errors.New("edition not found")
	ErrEditionExists      = errors.New("edition already exists")
	ErrStudentNotFound    = errors.New("student not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAlreadyAssigned    = errors.New("student already assigned to project")
	ErrAssignmentNotFound = errors.New("assignment not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
