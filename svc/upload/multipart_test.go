package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestMultipartFileAdapter(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "logo.png", "image/png", []byte("0123456789"))

	f, err := newMultipartFile(fh)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "logo.png", f.Name())
	assert.Equal(t, "image/png", f.DeclaredType())
	assert.Equal(t, int64(10), f.Size())

	got, err := f.ReadRange(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("2345"), got)

	got, err = f.ReadRange(context.Background(), 8, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("89"), got)
}

func TestMultipartFileDeclaredType(t *testing.T) {
	t.Parallel()

	t.Run("strips parameters", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "notes.txt", "text/plain; charset=utf-8", []byte("x"))
		f, err := newMultipartFile(fh)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, "text/plain", f.DeclaredType())
	})

	t.Run("defaults to octet-stream", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "blob", "", []byte("x"))
		fh.Header.Del("Content-Type")
		f, err := newMultipartFile(fh)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, "application/octet-stream", f.DeclaredType())
	})
}

func TestMultipartFileNilHeader(t *testing.T) {
	t.Parallel()

	_, err := newMultipartFile(nil)
	assert.ErrorIs(t, err, ErrMissingFile)
}
