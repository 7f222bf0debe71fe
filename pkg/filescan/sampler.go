package filescan

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Read bounds for each inspection stage. Signature bytes are configurable
// via WithSignatureBytes; the probe and sample sizes are fixed because the
// heuristics are calibrated against them.
const (
	defaultSignatureBytes = 16
	textProbeBytes        = 1024
	malwareSampleBytes    = 64 << 10
)

// readPrefix reads up to limit bytes from the start of f, clamped to the
// file size so implementations never see an out-of-range request.
func readPrefix(ctx context.Context, f FileHandle, limit int64) ([]byte, error) {
	if size := f.Size(); limit > size {
		limit = size
	}
	if limit <= 0 {
		return nil, nil
	}
	return f.ReadRange(ctx, 0, limit)
}

// toText decodes raw bytes tolerantly: invalid UTF-8 sequences are replaced
// rather than rejected, since heuristics must cope with binary junk.
func toText(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
