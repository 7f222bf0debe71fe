package filescan

import (
	"context"

	"github.com/dmitrymomot/brandkit/pkg/async"
)

// defaultBatchConcurrency bounds parallel validation to cap peak memory from
// simultaneous 64KB content samples.
const defaultBatchConcurrency = 4

// Rejection pairs a failed file with its error and the warnings its own run
// accumulated.
type Rejection struct {
	File     FileHandle `json:"-"`
	Err      FieldError `json:"error"`
	Warnings []string   `json:"warnings,omitempty"`
}

// BatchReport partitions a multi-file validation run. TotalWarnings is the
// deduplicated union of warnings from passing files only; warnings attached
// to rejected files stay scoped to their Rejection entry.
type BatchReport struct {
	Valid         []FileHandle
	Invalid       []Rejection
	TotalWarnings []string
}

// ValidateAll runs the pipeline over each file independently with bounded
// parallelism. One file's failure never affects another's outcome; results
// are partitioned in input order.
func (s *Scanner) ValidateAll(ctx context.Context, files []FileHandle) BatchReport {
	reports, _ := async.Map(ctx, files, s.batchConcurrency,
		func(ctx context.Context, f FileHandle) (Report, error) {
			return s.Validate(ctx, f), nil
		})

	var batch BatchReport
	seen := make(map[string]bool)

	for _, report := range reports {
		if report.Valid {
			batch.Valid = append(batch.Valid, report.File)
			for _, w := range report.Warnings {
				if !seen[w] {
					seen[w] = true
					batch.TotalWarnings = append(batch.TotalWarnings, w)
				}
			}
			continue
		}

		rejection := Rejection{File: report.File, Warnings: report.Warnings}
		if len(report.Errors) > 0 {
			rejection.Err = report.Errors[0]
		}
		batch.Invalid = append(batch.Invalid, rejection)
	}

	return batch
}
