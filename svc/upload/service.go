package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
	"github.com/dmitrymomot/brandkit/pkg/quarantine"
	"github.com/dmitrymomot/brandkit/pkg/storage"
)

// Result is the outcome of processing one upload. Exactly one of Stored and
// QuarantineID is set when Accepted is false and the file was held.
type Result struct {
	Accepted     bool                  `json:"accepted"`
	Stored       *storage.Object       `json:"stored,omitempty"`
	RecordID     string                `json:"record_id,omitempty"`
	URL          string                `json:"url,omitempty"`
	Errors       []filescan.FieldError `json:"errors,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
	Quarantined  bool                  `json:"quarantined"`
	QuarantineID string                `json:"quarantine_id,omitempty"`
}

// Service processes uploads: validation, persistence, metadata, quarantine.
type Service struct {
	scanner    *filescan.Scanner
	store      storage.Storage
	quarantine *quarantine.Store
	repo       *Repository
	log        *slog.Logger
}

// NewService wires the upload flow together.
func NewService(scanner *filescan.Scanner, store storage.Storage, q *quarantine.Store, repo *Repository, log *slog.Logger) *Service {
	return &Service{
		scanner:    scanner,
		store:      store,
		quarantine: q,
		repo:       repo,
		log:        log,
	}
}

// NewScannerFromConfig builds the validation pipeline from service config.
func NewScannerFromConfig(cfg Config) *filescan.Scanner {
	opts := []filescan.Option{
		filescan.WithMaxSize(cfg.MaxSize),
		filescan.WithAllowedTypes(cfg.AllowedTypes...),
		filescan.WithBatchConcurrency(cfg.BatchConcurrency),
	}
	if !cfg.CheckSignature {
		opts = append(opts, filescan.WithoutSignatureCheck())
	}
	if !cfg.ScanMalware {
		opts = append(opts, filescan.WithoutMalwareScan())
	}
	if cfg.AllowExecutables {
		opts = append(opts, filescan.WithAllowExecutables())
	}
	return filescan.New(opts...)
}

// Process validates one file and acts on the report: accepted files are
// persisted and recorded; reports advising quarantine are committed to the
// quarantine store; plain rejections are returned as-is. The quarantine
// hand-off lives here, not in the scanner - the pipeline only advises.
func (s *Service) Process(ctx context.Context, f filescan.FileHandle) (*Result, error) {
	report := s.scanner.Validate(ctx, f)

	if !report.Valid {
		result := &Result{
			Errors:      report.Errors,
			Warnings:    report.Warnings,
			Quarantined: report.Quarantined,
		}
		if report.Quarantined {
			reason := "validation failed"
			if len(report.Errors) > 0 {
				reason = report.Errors[0].Message
			}
			result.QuarantineID = s.quarantine.Put(f, reason)
			s.log.WarnContext(ctx, "upload quarantined",
				"file", f.Name(),
				"reason", reason,
				"quarantine_id", result.QuarantineID,
			)
		} else {
			s.log.InfoContext(ctx, "upload rejected",
				"file", f.Name(),
				"errors", len(report.Errors),
			)
		}
		return result, nil
	}

	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s/%s", id, storage.SanitizeFilename(f.Name()))

	obj, err := s.store.Save(ctx, f, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	rec := Record{
		ID:        id,
		Filename:  obj.Filename,
		Path:      obj.Path,
		Size:      obj.Size,
		MIMEType:  obj.MIMEType,
		Checksum:  obj.Checksum,
		Warnings:  report.Warnings,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		// Roll back the stored object so storage and metadata stay in sync.
		if delErr := s.store.Delete(ctx, obj.Path); delErr != nil {
			s.log.ErrorContext(ctx, "failed to roll back stored object",
				"path", obj.Path, "error", delErr)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "upload accepted",
		"file", f.Name(),
		"record_id", id,
		"size", obj.Size,
		"warnings", len(report.Warnings),
	)

	return &Result{
		Accepted: true,
		Stored:   obj,
		RecordID: id,
		URL:      s.store.URL(obj.Path),
		Warnings: report.Warnings,
	}, nil
}

// ProcessBatch validates many files and processes the outcomes
// independently; one file's failure never blocks the rest.
func (s *Service) ProcessBatch(ctx context.Context, files []filescan.FileHandle) ([]*Result, error) {
	results := make([]*Result, 0, len(files))
	for _, f := range files {
		res, err := s.Process(ctx, f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Quarantine exposes the underlying store for the HTTP handlers.
func (s *Service) Quarantine() *quarantine.Store {
	return s.quarantine
}
