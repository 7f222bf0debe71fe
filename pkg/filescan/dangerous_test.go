package filescan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

func TestDetectDangerousFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		filename     string
		declaredType string
		warnings     int
	}{
		{
			name:         "clean document",
			filename:     "report.pdf",
			declaredType: "application/pdf",
			warnings:     0,
		},
		{
			name:         "executable extension",
			filename:     "setup.exe",
			declaredType: "application/pdf",
			warnings:     1,
		},
		{
			name:         "uppercase extension",
			filename:     "installer.MSI",
			declaredType: "application/pdf",
			warnings:     1,
		},
		{
			name:         "shell script extension",
			filename:     "deploy.sh",
			declaredType: "text/plain",
			warnings:     1,
		},
		{
			name:         "executable MIME type",
			filename:     "innocuous.pdf",
			declaredType: "application/x-msdownload",
			warnings:     1,
		},
		{
			name:         "reserved device name bare",
			filename:     "CON",
			declaredType: "text/plain",
			warnings:     1,
		},
		{
			name:         "reserved device name with extension",
			filename:     "com1.pdf",
			declaredType: "application/pdf",
			warnings:     1,
		},
		{
			name:         "reserved prefix is not reserved",
			filename:     "common.txt",
			declaredType: "text/plain",
			warnings:     0,
		},
		{
			name:         "invalid filename characters",
			filename:     `file<1>.txt`,
			declaredType: "text/plain",
			warnings:     1,
		},
		{
			name:         "extension and MIME type stack",
			filename:     "dropper.exe",
			declaredType: "application/x-msdownload",
			warnings:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			warnings := filescan.DetectDangerousFile(tt.filename, tt.declaredType)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}
