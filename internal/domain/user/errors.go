package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrEmployeeIDRequired      = errors.New("employee_id claim is missing or invalid")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
