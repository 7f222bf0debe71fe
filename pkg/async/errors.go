package async

import "errors"

var (
	ErrTimeout      = errors.New("async: operation timed out waiting for future completion")
	ErrInvalidBound = errors.New("async: worker bound must be positive")
)
