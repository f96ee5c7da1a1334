package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("pdfUrl", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["pdfUrl"][0]
}

func TestLocal_SaveUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l := NewLocal(dir)
	at := time.UnixMilli(1700000000123)

	path, err := l.SaveUpload(fileHeader(t, "report.pdf", []byte("%PDF-1.4 body")), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "1700000000123_report.pdf")), path)

	data, err := l.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))
}

func TestLocal_SaveUpload_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)

	path, err := l.SaveUpload(fileHeader(t, "../../etc/passwd", []byte("x")), time.UnixMilli(1))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "1_passwd")), path)
}

func TestLocal_SaveUpload_DirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewLocal(blocker).SaveUpload(fileHeader(t, "a.pdf", []byte("x")), time.Now())
	assert.Error(t, err)
}
