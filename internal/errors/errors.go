package errors

import (
	"errors"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("admin role required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingClaim       = errors.New("missing claim")

	// ErrUpstreamUnavailable marks a geolocation failure. It is logged and
	// recovered from locally, never returned to API callers.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
