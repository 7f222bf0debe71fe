package filescan

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// defaultSignatures maps declared MIME types to the magic-byte prefixes a
// genuine file of that type may start with. Types absent from the table
// (plain text, markdown, CSV) have no reliable signature and fall back to
// content-based text validation. Kept as data, separate from pipeline logic,
// so it is independently testable and extensible.
var defaultSignatures = map[string][][]byte{
	"application/pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	"image/png":        {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/jpeg":       {{0xFF, 0xD8, 0xFF}},
	"image/gif":        {[]byte("GIF87a"), []byte("GIF89a")},
	"image/webp":       {[]byte("RIFF")},
	"image/bmp":        {{0x42, 0x4D}},
	"application/zip":  {{0x50, 0x4B, 0x03, 0x04}, {0x50, 0x4B, 0x05, 0x06}},
	"application/gzip": {{0x1F, 0x8B}},
	"application/msword": {
		{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, // OLE2 container
	},
	// OOXML documents are ZIP containers.
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {
		{0x50, 0x4B, 0x03, 0x04},
	},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {
		{0x50, 0x4B, 0x03, 0x04},
	},
}

// Patterns that indicate embedded markup or script inside content that
// claims to be plain text. Matched case-insensitively over the text probe.
var embeddedMarkupPatterns = []string{
	"<script",
	"javascript:",
	"vbscript:",
	"onload=",
	"onerror=",
	"eval(",
	"document.write",
}

// verifySignature checks the file header against the declared type's
// signature table, or validates the content as text when the type has no
// table entry. A configured custom check overrides both paths entirely.
func (s *Scanner) verifySignature(ctx context.Context, f FileHandle) error {
	header, err := readPrefix(ctx, f, s.signatureBytes)
	if err != nil {
		return fmt.Errorf("%w: reading file header: %w", ErrValidationFailed, err)
	}

	if s.customSignatureCheck != nil {
		if !s.customSignatureCheck(f, header) {
			return fmt.Errorf("%w: custom signature check rejected %q", ErrSignatureMismatch, f.Name())
		}
		return nil
	}

	declared := strings.ToLower(f.DeclaredType())
	if candidates, ok := s.signatures[declared]; ok {
		for _, magic := range candidates {
			if bytes.HasPrefix(header, magic) {
				return nil
			}
		}
		return fmt.Errorf("%w: header does not match any known signature for %q", ErrSignatureMismatch, f.DeclaredType())
	}

	return s.verifyTextContent(ctx, f)
}

// verifyTextContent probes the first 1KB of a file whose declared type has
// no magic-byte signature. Empty content and embedded markup/script both
// count as signature mismatches: a text upload carrying <script> is lying
// about what it is.
func (s *Scanner) verifyTextContent(ctx context.Context, f FileHandle) error {
	probe, err := readPrefix(ctx, f, textProbeBytes)
	if err != nil {
		return fmt.Errorf("%w: reading content probe: %w", ErrValidationFailed, err)
	}

	text := strings.TrimSpace(toText(probe))
	if text == "" {
		return fmt.Errorf("%w: text content is empty", ErrSignatureMismatch)
	}

	lower := strings.ToLower(text)
	for _, pattern := range embeddedMarkupPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("%w: text content contains %q", ErrSignatureMismatch, pattern)
		}
	}
	return nil
}
