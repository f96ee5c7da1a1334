package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Local keeps uploads and generated reports in one directory that is also
// served under /uploads.
type Local struct {
	Dir string
}

func NewLocal(dir string) *Local {
	return &Local{Dir: filepath.Clean(dir)}
}

func (l *Local) EnsureDir() error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

// Path joins name onto the storage dir, dropping any directory part of name.
func (l *Local) Path(name string) string {
	return filepath.Join(l.Dir, safeName(name))
}

// SaveUpload copies the multipart file to "<unix-ms>_<name>" and returns the
// stored path. A failed copy leaves the partial file in place.
func (l *Local) SaveUpload(fh *multipart.FileHeader, at time.Time) (string, error) {
	if err := l.EnsureDir(); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dstPath := l.Path(fmt.Sprintf("%d_%s", at.UnixMilli(), safeName(fh.Filename)))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Sync(); err != nil {
		return "", fmt.Errorf("sync upload file: %w", err)
	}
	return filepath.ToSlash(dstPath), nil
}

func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path))
}

func safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return "file"
	}
	return name
}
