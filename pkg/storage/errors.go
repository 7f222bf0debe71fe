package storage

import "errors"

var (
	ErrInvalidConfig    = errors.New("storage: invalid configuration")
	ErrInvalidPath      = errors.New("storage: invalid path")
	ErrNilFile          = errors.New("storage: file handle is nil")
	ErrFileNotFound     = errors.New("storage: file not found")
	ErrReadFailed       = errors.New("storage: failed to read file content")
	ErrWriteFailed      = errors.New("storage: failed to write file")
	ErrDeleteFailed     = errors.New("storage: failed to delete file")
	ErrAccessDenied     = errors.New("storage: access denied")
	ErrConfigLoadFailed = errors.New("storage: failed to load AWS config")
)
