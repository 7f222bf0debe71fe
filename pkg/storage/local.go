package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// Local stores objects on the local filesystem, confined to a base
// directory. All resolved paths are checked against the base directory to
// prevent traversal attacks.
type Local struct {
	baseDir string
	baseURL string
}

// NewLocal creates filesystem storage rooted at baseDir, creating the
// directory if needed. baseURL is the public prefix for URL generation.
func NewLocal(baseDir, baseURL string) (*Local, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving base directory: %w", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating base directory: %w", ErrWriteFailed, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Local{baseDir: absBaseDir, baseURL: baseURL}, nil
}

// Save writes the file under path. Partial files are removed on failure.
func (s *Local) Save(ctx context.Context, f filescan.FileHandle, path string) (*Object, error) {
	if f == nil {
		return nil, ErrNilFile
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	content, checksum, err := readAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = path
	}

	return &Object{
		Filename: SanitizeFilename(f.Name()),
		Path:     relPath,
		Size:     int64(len(content)),
		MIMEType: f.DeclaredType(),
		Checksum: checksum,
	}, nil
}

// Delete removes a stored file.
func (s *Local) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return nil
}

// Exists reports whether a file is present at path.
func (s *Local) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

// URL returns the public URL for a stored file.
func (s *Local) URL(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	if strings.HasPrefix(path, "/") {
		return path
	}
	return s.baseURL + path
}

// resolvePath joins path with the base directory and rejects any result that
// escapes it.
func (s *Local) resolvePath(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(path)))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	if absPath != s.baseDir && !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return absPath, nil
}
