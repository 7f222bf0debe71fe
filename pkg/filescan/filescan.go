package filescan

import "context"

// FileHandle is the pipeline's view of an uploaded file. Implementations are
// provided by the transport layer (multipart upload, local file, in-memory
// buffer); the pipeline never persists a handle and only reads bounded byte
// ranges through it.
type FileHandle interface {
	// Name returns the client-supplied filename.
	Name() string
	// DeclaredType returns the MIME type the client claims the file to be.
	// Signature verification checks the actual bytes against this claim.
	DeclaredType() string
	// Size returns the file size in bytes.
	Size() int64
	// ReadRange reads up to limit bytes starting at offset. A short read at
	// the end of the file is not an error.
	ReadRange(ctx context.Context, offset, limit int64) ([]byte, error)
}

// FailureKind classifies why validation rejected a file.
type FailureKind string

const (
	FileEmpty                FailureKind = "file_empty"
	FileTooLarge             FailureKind = "file_too_large"
	UnsupportedFileType      FailureKind = "unsupported_file_type"
	DangerousFile            FailureKind = "dangerous_file"
	SignatureMismatch        FailureKind = "signature_mismatch"
	MalwareSuspected         FailureKind = "malware_suspected"
	UnknownValidationFailure FailureKind = "unknown_validation_failure"
)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Kind    FailureKind `json:"kind"`
}

// Report is the outcome of validating one file. It is created fresh per
// Validate call and has no persistent identity.
//
// Invariants: Valid is never true while Errors is non-empty, and Quarantined
// is only ever set by the dangerous-file and malware stages.
type Report struct {
	Valid       bool         `json:"valid"`
	File        FileHandle   `json:"-"`
	Errors      []FieldError `json:"errors,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
	Quarantined bool         `json:"quarantined"`
}
