// Package storage persists uploads that passed security validation.
//
// Both backends consume files through the filescan.FileHandle contract, so
// the same handle that went through the validation pipeline is the one that
// gets stored - there is no second read path to get out of sync with what
// was inspected.
//
// Two implementations are provided:
//   - Local: filesystem storage confined to a base directory, with path
//     traversal protection.
//   - S3: Amazon S3 and S3-compatible services (MinIO, Wasabi).
//
// Save computes an xxhash-64 checksum of the content while writing, recorded
// in the returned Object for deduplication and integrity checks.
package storage
