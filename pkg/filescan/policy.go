package filescan

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultMaxSize caps uploads at 10MB unless the caller overrides it.
const DefaultMaxSize = 10 << 20

// defaultAllowedTypes covers the document and media types the product
// accepts out of the box. Callers narrow or widen this via WithAllowedTypes.
var defaultAllowedTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"text/plain",
	"text/markdown",
	"text/csv",
}

// typeMatcher matches a declared MIME type against one allowlist entry.
// Entries containing wildcard metacharacters are compiled as glob patterns
// with '/' as separator so "image/*" matches the image family but never
// crosses into another top-level type. Plain entries compare exactly.
type typeMatcher struct {
	raw     string
	pattern glob.Glob
}

func compileTypeMatchers(types []string) []typeMatcher {
	matchers := make([]typeMatcher, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		m := typeMatcher{raw: t}
		if strings.ContainsAny(t, "*?[") {
			if g, err := glob.Compile(t, '/'); err == nil {
				m.pattern = g
			}
		}
		matchers = append(matchers, m)
	}
	return matchers
}

func (m typeMatcher) matches(declared string) bool {
	if m.pattern != nil {
		return m.pattern.Match(declared)
	}
	return m.raw == declared
}

// checkSize rejects empty files and files exceeding the applicable ceiling.
// A per-type limit takes precedence over the global maximum when configured.
func (s *Scanner) checkSize(f FileHandle) error {
	size := f.Size()
	if size == 0 {
		return fmt.Errorf("%w: %q", ErrFileEmpty, f.Name())
	}

	limit := s.maxSize
	if typeLimit, ok := s.typeLimits[strings.ToLower(f.DeclaredType())]; ok {
		limit = typeLimit
	}
	if size > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d bytes limit", ErrFileTooLarge, size, limit)
	}
	return nil
}

// checkType verifies the declared MIME type against the allowlist. This runs
// before any byte is read, so disallowed types never trigger I/O.
func (s *Scanner) checkType(f FileHandle) error {
	declared := strings.ToLower(f.DeclaredType())
	for _, m := range s.allowedTypes {
		if m.matches(declared) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFileType, f.DeclaredType())
}
