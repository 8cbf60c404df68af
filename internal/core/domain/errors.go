package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrMalformedInput     = errors.New("malformed input")
)
