// Package quarantine provides an in-memory holding area for uploads the
// validation pipeline flagged as risky.
//
// The store is deliberately decoupled from the scanner: a Report with
// Quarantined set is advisory, and the calling layer decides whether to hand
// the file to Put. This leaves room for human review between flagging a file
// and committing to hold it.
//
//	store := quarantine.New()
//	id := store.Put(upload, report.Errors[0].Message)
//
//	// later, after operator review
//	if f, ok := store.Release(id); ok {
//	    // proceed with the original file handle
//	}
//
// Records live for the process lifetime; there is no TTL, persistence, or
// eviction - a held file must be explicitly released or cleared. All methods
// are safe for concurrent use.
package quarantine
