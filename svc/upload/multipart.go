package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// multipartFile adapts a *multipart.FileHeader to filescan.FileHandle.
// multipart.File implements io.ReaderAt, so bounded range reads map directly
// onto the already-open part without re-reading the body.
type multipartFile struct {
	header *multipart.FileHeader
	file   multipart.File
}

func newMultipartFile(fh *multipart.FileHeader) (*multipartFile, error) {
	if fh == nil {
		return nil, ErrMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	return &multipartFile{header: fh, file: f}, nil
}

func (m *multipartFile) Name() string { return m.header.Filename }

// DeclaredType returns the Content-Type the client attached to the part,
// stripped of parameters. Falls back to application/octet-stream, which the
// default allowlist rejects.
func (m *multipartFile) DeclaredType() string {
	ct := m.header.Header.Get("Content-Type")
	if ct == "" {
		return "application/octet-stream"
	}
	if base, _, found := strings.Cut(ct, ";"); found {
		return strings.TrimSpace(base)
	}
	return ct
}

func (m *multipartFile) Size() int64 { return m.header.Size }

func (m *multipartFile) ReadRange(ctx context.Context, offset, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid range: offset=%d limit=%d", offset, limit)
	}

	buf := make([]byte, limit)
	n, err := m.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func (m *multipartFile) Close() error {
	return m.file.Close()
}
