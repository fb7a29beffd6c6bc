package service

import "errors"

// Failure taxonomy shared by all workflows. Handlers map these onto HTTP
// status codes; anything else is treated as a remote/infrastructure failure.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrUserLocked       = errors.New("user is locked")
)
