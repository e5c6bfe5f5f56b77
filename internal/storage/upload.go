// Package storage keeps uploaded files on local disk for the lifetime of a
// single request.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"slide-quiz/internal/logger"
	"slide-quiz/internal/util"

	"go.uber.org/zap"
)

// UploadStore saves uploads under a directory with generated names, so the
// client's filename never reaches the filesystem.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save copies the upload to <dir>/<ulid>.<ext>. The returned release func
// removes the file and must be called on every exit path.
func (s *UploadStore) Save(fh *multipart.FileHeader, ext string) (string, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, util.NewULID()+"."+ext)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Get().Warn("Failed to remove upload", zap.String("path", path), zap.Error(err))
		}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		release()
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}
	return path, release, nil
}
