package errors

import "errors"

var (
	// ErrNotFound marks a missing resource, or one owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or rejected caller identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument marks caller input that cannot be processed.
	ErrInvalidArgument = errors.New("invalid argument")
)
