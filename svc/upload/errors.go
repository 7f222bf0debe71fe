package upload

import "errors"

var (
	ErrMissingFile     = errors.New("upload: request carries no file")
	ErrStoreFailed     = errors.New("upload: failed to persist file")
	ErrRecordFailed    = errors.New("upload: failed to record upload metadata")
	ErrUnknownRecord   = errors.New("upload: unknown quarantine record")
	ErrDuplicateUpload = errors.New("upload: identical content already stored")
)
