package filescan

import (
	"context"
	"errors"
	"strings"
)

// CustomSignatureCheck overrides the default signature verification. It
// receives the file and the sampled header bytes and returns whether the
// content is acceptable.
type CustomSignatureCheck func(f FileHandle, header []byte) bool

// Scanner runs the validation pipeline. Construct with New; the zero value
// is not usable. All fields are fixed at construction, so a single Scanner
// is safe for concurrent Validate calls.
type Scanner struct {
	maxSize              int64
	typeLimits           map[string]int64
	allowedTypes         []typeMatcher
	signatures           map[string][][]byte
	signatureBytes       int64
	checkSignature       bool
	scanMalware          bool
	allowExecutables     bool
	customSignatureCheck CustomSignatureCheck
	batchConcurrency     int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxSize sets the global size ceiling in bytes.
func WithMaxSize(maxBytes int64) Option {
	if maxBytes <= 0 {
		panic("filescan: WithMaxSize requires a positive limit")
	}
	return func(s *Scanner) { s.maxSize = maxBytes }
}

// WithTypeLimit sets a per-type size ceiling that takes precedence over the
// global maximum for files declaring the given MIME type.
func WithTypeLimit(mimeType string, maxBytes int64) Option {
	if maxBytes <= 0 {
		panic("filescan: WithTypeLimit requires a positive limit")
	}
	return func(s *Scanner) {
		s.typeLimits[strings.ToLower(mimeType)] = maxBytes
	}
}

// WithAllowedTypes replaces the declared-type allowlist. Entries are exact
// MIME strings or glob patterns such as "image/*".
func WithAllowedTypes(types ...string) Option {
	return func(s *Scanner) { s.allowedTypes = compileTypeMatchers(types) }
}

// WithSignature adds or replaces the magic-byte candidates for a MIME type.
func WithSignature(mimeType string, candidates ...[]byte) Option {
	return func(s *Scanner) {
		s.signatures[strings.ToLower(mimeType)] = candidates
	}
}

// WithSignatureBytes sets how many header bytes signature checks sample.
func WithSignatureBytes(n int64) Option {
	if n <= 0 {
		panic("filescan: WithSignatureBytes requires a positive count")
	}
	return func(s *Scanner) { s.signatureBytes = n }
}

// WithoutSignatureCheck disables the signature verification stage.
func WithoutSignatureCheck() Option {
	return func(s *Scanner) { s.checkSignature = false }
}

// WithoutMalwareScan disables the heuristic malware stage.
func WithoutMalwareScan() Option {
	return func(s *Scanner) { s.scanMalware = false }
}

// WithAllowExecutables skips the dangerous-file stage entirely. Intended for
// trusted operator flows, never for end-user uploads.
func WithAllowExecutables() Option {
	return func(s *Scanner) { s.allowExecutables = true }
}

// WithCustomSignatureCheck replaces the default signature logic with fn.
func WithCustomSignatureCheck(fn CustomSignatureCheck) Option {
	return func(s *Scanner) { s.customSignatureCheck = fn }
}

// WithBatchConcurrency caps how many files ValidateAll inspects in parallel.
func WithBatchConcurrency(n int) Option {
	if n <= 0 {
		panic("filescan: WithBatchConcurrency requires a positive count")
	}
	return func(s *Scanner) { s.batchConcurrency = n }
}

// New returns a Scanner with the default policy: 10MB global ceiling, the
// default document/media allowlist, signature checks and malware scanning
// enabled, executables rejected.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		maxSize:          DefaultMaxSize,
		typeLimits:       make(map[string]int64),
		allowedTypes:     compileTypeMatchers(defaultAllowedTypes),
		signatures:       make(map[string][][]byte, len(defaultSignatures)),
		signatureBytes:   defaultSignatureBytes,
		checkSignature:   true,
		scanMalware:      true,
		batchConcurrency: defaultBatchConcurrency,
	}
	for mime, candidates := range defaultSignatures {
		s.signatures[mime] = candidates
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate runs the full pipeline over one file and always returns a Report;
// it never panics or returns an error value. Stage order is fixed: size and
// emptiness, type allowlist, dangerous-file heuristics, signature
// verification, malware heuristics. The first failing stage aborts the run
// and its Report keeps every warning accumulated so far.
func (s *Scanner) Validate(ctx context.Context, f FileHandle) Report {
	if f == nil {
		return Report{
			Errors: []FieldError{{
				Field:   "file",
				Message: ErrNilFile.Error(),
				Kind:    UnknownValidationFailure,
			}},
		}
	}

	var warnings []string

	if err := s.checkSize(f); err != nil {
		return s.fail(f, warnings, err)
	}
	if err := s.checkType(f); err != nil {
		return s.fail(f, warnings, err)
	}

	if !s.allowExecutables {
		if hits := DetectDangerousFile(f.Name(), f.DeclaredType()); len(hits) > 0 {
			warnings = append(warnings, hits...)
			return s.fail(f, warnings, ErrDangerousFile)
		}
	}

	if s.checkSignature {
		if err := s.verifySignature(ctx, f); err != nil {
			return s.fail(f, warnings, err)
		}
	}

	if s.scanMalware {
		stageWarnings, err := s.scanContent(ctx, f)
		warnings = append(warnings, stageWarnings...)
		if err != nil {
			return s.fail(f, warnings, err)
		}
		if len(stageWarnings) > malwareWarningLimit {
			return s.fail(f, warnings, ErrMalwareSuspected)
		}
	}

	return Report{Valid: true, File: f, Warnings: warnings}
}

// fail converts a stage error into a single-error Report, carrying the
// warnings accumulated before and during the failing stage. Quarantine is
// advised only for the dangerous-file and malware stages.
func (s *Scanner) fail(f FileHandle, warnings []string, err error) Report {
	var (
		kind        FailureKind
		field       string
		quarantined bool
	)

	switch {
	case errors.Is(err, ErrFileEmpty):
		kind, field = FileEmpty, "size"
	case errors.Is(err, ErrFileTooLarge):
		kind, field = FileTooLarge, "size"
	case errors.Is(err, ErrUnsupportedFileType):
		kind, field = UnsupportedFileType, "type"
	case errors.Is(err, ErrDangerousFile):
		kind, field, quarantined = DangerousFile, "name", true
	case errors.Is(err, ErrSignatureMismatch):
		kind, field = SignatureMismatch, "content"
	case errors.Is(err, ErrMalwareSuspected):
		kind, field, quarantined = MalwareSuspected, "content", true
	default:
		kind, field = UnknownValidationFailure, "file"
	}

	return Report{
		File:        f,
		Errors:      []FieldError{{Field: field, Message: err.Error(), Kind: kind}},
		Warnings:    warnings,
		Quarantined: quarantined,
	}
}
