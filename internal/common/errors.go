package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorPermissionDenied = errors.New("permission denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Session errors.
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrChangesPending   = errors.New("uncommitted changes pending")
	ErrUnknownDatastore = errors.New("unknown datastore")
	ErrInvalidPath      = errors.New("invalid data path")

	// Request decoding errors.
	ErrUnknownTarget = errors.New("unknown target")
)
