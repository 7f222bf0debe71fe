package storage

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// Object describes a stored upload.
type Object struct {
	Filename string // sanitized original filename
	Path     string // storage-relative key
	Size     int64  // bytes written
	MIMEType string // declared type, verified by the validation pipeline
	Checksum string // xxhash-64 of the content, hex encoded
}

// Storage is the backend contract for persisting validated uploads.
type Storage interface {
	// Save writes the file content under path and returns its metadata.
	Save(ctx context.Context, f filescan.FileHandle, path string) (*Object, error)
	// Delete removes a stored object.
	Delete(ctx context.Context, path string) error
	// Exists reports whether an object is present at path.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for a stored object.
	URL(path string) string
}

// readChunkBytes balances memory use and round-trips when draining a
// FileHandle through its bounded range reads.
const readChunkBytes = 32 << 10

// readAll drains a FileHandle into memory while hashing it. Upload sizes are
// already capped by the validation pipeline, so buffering is bounded.
func readAll(ctx context.Context, f filescan.FileHandle) ([]byte, string, error) {
	h := xxhash.New()
	buf := make([]byte, 0, f.Size())

	for offset := int64(0); offset < f.Size(); {
		chunk, err := f.ReadRange(ctx, offset, readChunkBytes)
		if err != nil {
			return nil, "", err
		}
		if len(chunk) == 0 {
			break
		}
		_, _ = h.Write(chunk)
		buf = append(buf, chunk...)
		offset += int64(len(chunk))
	}

	sum := h.Sum(nil)
	return buf, hex.EncodeToString(sum), nil
}

// SanitizeFilename strips path components and null bytes from a
// client-supplied filename so it is safe to use as a storage key segment.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
