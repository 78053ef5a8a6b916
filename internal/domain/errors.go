package domain

import "errors"

var (
	// ErrInvalidRequest signals search parameters rejected before execution.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrExecutionFailure signals a failed call through the query execution port.
	ErrExecutionFailure = errors.New("query execution failed")
)
