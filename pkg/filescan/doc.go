// Package filescan implements the security-validation pipeline that gates
// user-uploaded files before they are accepted into storage.
//
// A Scanner runs a fixed sequence of checks over a single FileHandle:
//
//  1. Size and emptiness against global and per-type ceilings.
//  2. Declared MIME type against the configured allowlist.
//  3. Dangerous-file heuristics over the filename and declared type
//     (skipped when executables are explicitly allowed).
//  4. Magic-byte signature verification against the declared type, falling
//     back to text-content inspection for types without a signature
//     (skipped when signature checking is disabled).
//  5. Heuristic malware scanning: suspicious-pattern matches plus a
//     statistical obfuscation score over a bounded content sample
//     (skipped when malware scanning is disabled).
//
// Stages may attach non-fatal warnings; the first failing stage aborts the
// pipeline and the resulting Report carries every warning accumulated up to
// that point. Validate never returns a Go error - unexpected I/O faults are
// folded into the Report as a non-quarantined failure so the calling layer
// always has a single value to act on.
//
// # Usage
//
//	scanner := filescan.New(
//		filescan.WithMaxSize(25<<20),
//		filescan.WithAllowedTypes("application/pdf", "image/*", "text/plain"),
//	)
//
//	report := scanner.Validate(ctx, upload)
//	if !report.Valid {
//		// report.Errors[0] holds the rejection reason;
//		// report.Quarantined advises holding the file for review.
//	}
//
// Reads are bounded: 16 bytes (configurable) for signature checks, 1 KB for
// the text-content probe, and min(file size, 64 KB) for the malware sample.
// A Scanner holds no mutable state after construction and is safe for
// concurrent use; ValidateAll runs files through the pipeline with bounded
// parallelism and partitions the results.
//
// Quarantining is advisory only. The pipeline never stores anything: when a
// Report comes back with Quarantined set, the caller decides whether to hand
// the file to a quarantine store (see package quarantine) or reject outright.
package filescan
