package filescan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

func TestValidateAllPartitionsResults(t *testing.T) {
	t.Parallel()

	files := []filescan.FileHandle{
		pdfFile("good.pdf"),
		filescan.NewMemFile("notes.txt", "text/plain", []byte("meeting notes")),
		filescan.NewMemFile("warn.txt", "text/plain", []byte("run cmd.exe with a base64 payload")),
		filescan.NewMemFile("empty.txt", "text/plain", nil),
		filescan.NewMemFile("evil.ps1", "text/plain", []byte("Get-Process")),
	}

	batch := filescan.New().ValidateAll(context.Background(), files)

	require.Len(t, batch.Valid, 3)
	assert.Equal(t, "good.pdf", batch.Valid[0].Name())
	assert.Equal(t, "notes.txt", batch.Valid[1].Name())
	assert.Equal(t, "warn.txt", batch.Valid[2].Name())

	require.Len(t, batch.Invalid, 2)
	assert.Equal(t, "empty.txt", batch.Invalid[0].File.Name())
	assert.Equal(t, filescan.FileEmpty, batch.Invalid[0].Err.Kind)
	assert.Equal(t, "evil.ps1", batch.Invalid[1].File.Name())
	assert.Equal(t, filescan.DangerousFile, batch.Invalid[1].Err.Kind)
	assert.NotEmpty(t, batch.Invalid[1].Warnings)
}

func TestValidateAllWarningUnionFromPassingFilesOnly(t *testing.T) {
	t.Parallel()

	files := []filescan.FileHandle{
		filescan.NewMemFile("warn.txt", "text/plain", []byte("run cmd.exe with a base64 payload")),
		filescan.NewMemFile("evil.bat", "text/plain", []byte("echo hello")),
	}

	batch := filescan.New().ValidateAll(context.Background(), files)

	require.Len(t, batch.Valid, 1)
	require.Len(t, batch.Invalid, 1)

	// Warnings from the rejected file stay scoped to its rejection entry.
	assert.Len(t, batch.TotalWarnings, 2)
	assert.Contains(t, batch.TotalWarnings, "suspicious pattern detected: cmd.exe reference")
	assert.Contains(t, batch.TotalWarnings, "suspicious pattern detected: base64 payload")
	for _, w := range batch.Invalid[0].Warnings {
		assert.NotContains(t, batch.TotalWarnings, w)
	}
}

func TestValidateAllDeduplicatesWarnings(t *testing.T) {
	t.Parallel()

	content := []byte("run cmd.exe with a base64 payload")
	files := []filescan.FileHandle{
		filescan.NewMemFile("a.txt", "text/plain", content),
		filescan.NewMemFile("b.txt", "text/plain", content),
	}

	batch := filescan.New().ValidateAll(context.Background(), files)

	assert.Len(t, batch.Valid, 2)
	assert.Len(t, batch.TotalWarnings, 2)
}

func TestValidateAllEmptyInput(t *testing.T) {
	t.Parallel()

	batch := filescan.New().ValidateAll(context.Background(), nil)

	assert.Empty(t, batch.Valid)
	assert.Empty(t, batch.Invalid)
	assert.Empty(t, batch.TotalWarnings)
}

func TestValidateAllSerialConcurrency(t *testing.T) {
	t.Parallel()

	scanner := filescan.New(filescan.WithBatchConcurrency(1))
	files := []filescan.FileHandle{
		pdfFile("one.pdf"),
		pdfFile("two.pdf"),
		pdfFile("three.pdf"),
	}

	batch := scanner.ValidateAll(context.Background(), files)

	require.Len(t, batch.Valid, 3)
	assert.Equal(t, "one.pdf", batch.Valid[0].Name())
	assert.Equal(t, "two.pdf", batch.Valid[1].Name())
	assert.Equal(t, "three.pdf", batch.Valid[2].Name())
}
