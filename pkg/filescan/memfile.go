package filescan

import (
	"context"
	"fmt"
)

// MemFile is an in-memory FileHandle. Transports that buffer small uploads
// before validation wrap the buffer in a MemFile; it is also the natural
// handle for tests.
type MemFile struct {
	name         string
	declaredType string
	data         []byte
}

// NewMemFile wraps a byte slice in a FileHandle. The slice is not copied.
func NewMemFile(name, declaredType string, data []byte) *MemFile {
	return &MemFile{name: name, declaredType: declaredType, data: data}
}

func (f *MemFile) Name() string         { return f.name }
func (f *MemFile) DeclaredType() string { return f.declaredType }
func (f *MemFile) Size() int64          { return int64(len(f.data)) }

// Bytes returns the underlying content. Callers use it to persist the file
// after validation passes.
func (f *MemFile) Bytes() []byte { return f.data }

// ReadRange returns up to limit bytes starting at offset. Short reads at the
// end of the buffer are not an error.
func (f *MemFile) ReadRange(ctx context.Context, offset, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid range: offset=%d limit=%d", offset, limit)
	}
	if offset >= int64(len(f.data)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	out := make([]byte, end-offset)
	copy(out, f.data[offset:end])
	return out, nil
}
