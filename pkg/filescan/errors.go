package filescan

import "errors"

var (
	ErrNilFile             = errors.New("file handle is nil")
	ErrFileEmpty           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file size exceeds maximum allowed size")
	ErrUnsupportedFileType = errors.New("file type is not allowed")
	ErrDangerousFile       = errors.New("file is potentially dangerous")
	ErrSignatureMismatch   = errors.New("file content does not match declared type")
	ErrMalwareSuspected    = errors.New("file content matches malware heuristics")
	ErrValidationFailed    = errors.New("validation failed unexpectedly")
)
