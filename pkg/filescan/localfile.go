package filescan

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalFile adapts a file on disk to FileHandle, used by the offline scan
// command and integration tests. The declared type is derived from the
// extension since local files carry no client-declared MIME type.
type LocalFile struct {
	file         *os.File
	name         string
	declaredType string
	size         int64
}

// OpenLocalFile opens path for bounded-range reading. Callers must Close it.
func OpenLocalFile(path string) (*LocalFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	declared := mime.TypeByExtension(filepath.Ext(path))
	if declared == "" {
		declared = "application/octet-stream"
	}
	// TypeByExtension may append parameters ("text/plain; charset=utf-8");
	// the pipeline matches on the bare media type.
	if base, _, found := strings.Cut(declared, ";"); found {
		declared = strings.TrimSpace(base)
	}

	return &LocalFile{
		file:         f,
		name:         filepath.Base(path),
		declaredType: declared,
		size:         info.Size(),
	}, nil
}

func (l *LocalFile) Name() string         { return l.name }
func (l *LocalFile) DeclaredType() string { return l.declaredType }
func (l *LocalFile) Size() int64          { return l.size }

func (l *LocalFile) ReadRange(ctx context.Context, offset, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid range: offset=%d limit=%d", offset, limit)
	}

	buf := make([]byte, limit)
	n, err := l.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %q: %w", l.name, err)
	}
	return buf[:n], nil
}

// Close releases the underlying file descriptor.
func (l *LocalFile) Close() error {
	return l.file.Close()
}
