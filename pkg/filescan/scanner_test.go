package filescan_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// countingFile wraps a MemFile and records how many range reads the pipeline
// issued against it.
type countingFile struct {
	*filescan.MemFile
	reads int
}

func (c *countingFile) ReadRange(ctx context.Context, offset, limit int64) ([]byte, error) {
	c.reads++
	return c.MemFile.ReadRange(ctx, offset, limit)
}

func pdfFile(name string) *filescan.MemFile {
	return filescan.NewMemFile(name, "application/pdf", []byte("%PDF-1.4\nhello brandkit document body\n"))
}

func TestValidateNilFile(t *testing.T) {
	t.Parallel()

	report := filescan.New().Validate(context.Background(), nil)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.UnknownValidationFailure, report.Errors[0].Kind)
	assert.Equal(t, "file", report.Errors[0].Field)
	assert.False(t, report.Quarantined)
}

func TestValidateEmptyFile(t *testing.T) {
	t.Parallel()

	f := filescan.NewMemFile("empty.txt", "text/plain", nil)
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.FileEmpty, report.Errors[0].Kind)
	assert.Equal(t, "size", report.Errors[0].Field)
	assert.False(t, report.Quarantined)
}

func TestValidateFileTooLarge(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithMaxSize(8))
	f := filescan.NewMemFile("big.txt", "text/plain", bytes.Repeat([]byte("a"), 16))

	report := scanner.Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.FileTooLarge, report.Errors[0].Kind)
	assert.Equal(t, "size", report.Errors[0].Field)
}

func TestValidateTypeLimitPrecedence(t *testing.T) {
	t.Parallel()

	// The per-type ceiling binds text files while the global maximum still
	// applies to everything else.
	scanner := filescan.New(filescan.WithTypeLimit("text/plain", 4))

	text := filescan.NewMemFile("notes.txt", "text/plain", []byte("0123456789"))
	report := scanner.Validate(context.Background(), text)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.FileTooLarge, report.Errors[0].Kind)

	report = scanner.Validate(context.Background(), pdfFile("doc.pdf"))
	assert.True(t, report.Valid)
}

func TestValidateUnsupportedTypeReadsNothing(t *testing.T) {
	t.Parallel()

	f := &countingFile{MemFile: filescan.NewMemFile("archive.tar", "application/x-tar", []byte("data"))}
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.UnsupportedFileType, report.Errors[0].Kind)
	assert.Equal(t, "type", report.Errors[0].Field)
	assert.Zero(t, f.reads, "type rejection must not trigger any I/O")
}

func TestValidatePDFHappyPath(t *testing.T) {
	t.Parallel()

	f := pdfFile("report.pdf")
	report := filescan.New().Validate(context.Background(), f)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.False(t, report.Quarantined)
	assert.Same(t, f, report.File)
}

func TestValidateSignatureMismatch(t *testing.T) {
	t.Parallel()

	f := filescan.NewMemFile("fake.pdf", "application/pdf", make([]byte, 32))
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.SignatureMismatch, report.Errors[0].Kind)
	assert.Equal(t, "content", report.Errors[0].Field)
	assert.False(t, report.Quarantined)
}

func TestValidateTextWithEmbeddedScript(t *testing.T) {
	t.Parallel()

	f := filescan.NewMemFile("notes.txt", "text/plain", []byte("<script>alert(1)</script>"))
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.SignatureMismatch, report.Errors[0].Kind)
	assert.False(t, report.Quarantined)
}

func TestValidateWhitespaceOnlyText(t *testing.T) {
	t.Parallel()

	f := filescan.NewMemFile("blank.txt", "text/plain", []byte("   \n\t "))
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.SignatureMismatch, report.Errors[0].Kind)
}

func TestValidateDangerousFile(t *testing.T) {
	t.Parallel()

	f := filescan.NewMemFile("evil.exe", "application/pdf", []byte("%PDF-1.4"))
	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.DangerousFile, report.Errors[0].Kind)
	assert.Equal(t, "name", report.Errors[0].Field)
	assert.True(t, report.Quarantined)
	assert.NotEmpty(t, report.Warnings)
}

func TestValidateAllowExecutables(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithAllowExecutables())
	f := filescan.NewMemFile("evil.exe", "application/pdf", []byte("%PDF-1.4"))

	report := scanner.Validate(context.Background(), f)
	assert.True(t, report.Valid)
}

func TestValidateMalwareSuspected(t *testing.T) {
	t.Parallel()

	content := []byte("please run powershell and cmd.exe with a base64 payload")
	f := filescan.NewMemFile("script.txt", "text/plain", content)

	report := filescan.New().Validate(context.Background(), f)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.MalwareSuspected, report.Errors[0].Kind)
	assert.Equal(t, "content", report.Errors[0].Field)
	assert.True(t, report.Quarantined)
	assert.Len(t, report.Warnings, 3)
	assert.Contains(t, report.Warnings, "suspicious pattern detected: powershell reference")
	assert.Contains(t, report.Warnings, "suspicious pattern detected: cmd.exe reference")
	assert.Contains(t, report.Warnings, "suspicious pattern detected: base64 payload")
}

func TestValidateMalwareWarningsWithinLimit(t *testing.T) {
	t.Parallel()

	// Two indicators stay below the reject threshold: the file passes with
	// its warnings surfaced.
	content := []byte("run cmd.exe with a base64 payload")
	f := filescan.NewMemFile("notes.txt", "text/plain", content)

	report := filescan.New().Validate(context.Background(), f)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.Warnings, 2)
}

func TestValidateWithoutMalwareScan(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithoutMalwareScan())
	content := []byte("please run powershell and cmd.exe with a base64 payload")
	f := filescan.NewMemFile("script.txt", "text/plain", content)

	report := scanner.Validate(context.Background(), f)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Warnings)
}

func TestValidateWithoutSignatureCheck(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithoutSignatureCheck())
	f := filescan.NewMemFile("fake.pdf", "application/pdf", make([]byte, 16))

	report := scanner.Validate(context.Background(), f)
	assert.True(t, report.Valid)
}

func TestValidateGlobAllowlist(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithAllowedTypes("image/*"))

	pngMagic := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	png := filescan.NewMemFile("logo.png", "image/png", append(pngMagic, 0x01, 0x02))
	report := scanner.Validate(context.Background(), png)
	assert.True(t, report.Valid)

	report = scanner.Validate(context.Background(), pdfFile("doc.pdf"))
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.UnsupportedFileType, report.Errors[0].Kind)
}

func TestValidateCustomSignatureCheck(t *testing.T) {
	t.Parallel()

	t.Run("rejects", func(t *testing.T) {
		t.Parallel()
		scanner := filescan.New(filescan.WithCustomSignatureCheck(
			func(f filescan.FileHandle, header []byte) bool { return false },
		))

		report := scanner.Validate(context.Background(), pdfFile("doc.pdf"))
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, filescan.SignatureMismatch, report.Errors[0].Kind)
	})

	t.Run("accepts and receives the header", func(t *testing.T) {
		t.Parallel()
		var seen []byte
		scanner := filescan.New(filescan.WithCustomSignatureCheck(
			func(f filescan.FileHandle, header []byte) bool {
				seen = header
				return true
			},
		))

		report := scanner.Validate(context.Background(), pdfFile("doc.pdf"))
		assert.True(t, report.Valid)
		assert.Equal(t, []byte("%PDF-1.4\nhello b"), seen)
	})
}

func TestValidateCustomSignatureTable(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(
		filescan.WithAllowedTypes("application/x-custom"),
		filescan.WithSignature("application/x-custom", []byte("CUST")),
	)

	good := filescan.NewMemFile("data.cust", "application/x-custom", []byte("CUSTOM payload here"))
	report := scanner.Validate(context.Background(), good)
	assert.True(t, report.Valid)

	bad := filescan.NewMemFile("data.cust", "application/x-custom", []byte("NOPE payload here"))
	report = scanner.Validate(context.Background(), bad)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filescan.SignatureMismatch, report.Errors[0].Kind)
}

func TestValidateSignatureBytes(t *testing.T) {
	t.Parallel()

	magic := []byte("CUSTOMFORMAT-MAGIC-1") // 20 bytes, longer than the default sample
	content := append(append([]byte{}, magic...), []byte(" data")...)

	defaultSample := filescan.New(
		filescan.WithAllowedTypes("application/x-custom"),
		filescan.WithSignature("application/x-custom", magic),
	)
	report := defaultSample.Validate(context.Background(),
		filescan.NewMemFile("data.cust", "application/x-custom", content))
	assert.False(t, report.Valid, "16-byte header cannot match a 20-byte magic")

	widerSample := filescan.New(
		filescan.WithAllowedTypes("application/x-custom"),
		filescan.WithSignature("application/x-custom", magic),
		filescan.WithSignatureBytes(32),
	)
	report = widerSample.Validate(context.Background(),
		filescan.NewMemFile("data.cust", "application/x-custom", content))
	assert.True(t, report.Valid)
}

func TestValidateHighObfuscationWarning(t *testing.T) {
	t.Parallel()

	// One long line over a wide alphabet with dense escape tokens trips the
	// obfuscation scorer, but a single warning is not enough to reject.
	var sample []byte
	for i := 0; i < 2; i++ {
		for r := byte('!'); r <= '~'; r++ {
			sample = append(sample, r)
		}
	}
	for i := 0; i < 11; i++ {
		sample = append(sample, '\\', 'x')
	}

	f := filescan.NewMemFile("blob.txt", "text/plain", sample)
	report := filescan.New().Validate(context.Background(), f)

	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "high obfuscation score")
}

func TestOptionsPanicOnInvalidInput(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { filescan.WithMaxSize(0) })
	assert.Panics(t, func() { filescan.WithTypeLimit("text/plain", -1) })
	assert.Panics(t, func() { filescan.WithSignatureBytes(0) })
	assert.Panics(t, func() { filescan.WithBatchConcurrency(0) })
}
