package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// LocalObjectStorage writes objects below a directory that the HTTP server
// exposes under the public base URL.
type LocalObjectStorage struct {
	root          string
	publicBaseURL string
	logger        *zap.Logger
}

var _ catalogapp.ObjectStorage = (*LocalObjectStorage)(nil)

func NewLocalObjectStorage(root, publicBaseURL string, logger *zap.Logger) (*LocalObjectStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalObjectStorage{root: root, publicBaseURL: publicBaseURL, logger: logger}, nil
}

// Root is the directory served for uploaded files.
func (s *LocalObjectStorage) Root() string {
	return s.root
}

func (s *LocalObjectStorage) path(key string) (string, error) {
	if key == "" {
		return "", errEmptyKey
	}
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalObjectStorage) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("object stored", zap.String("path", path), zap.Int64("bytes", n))
	return publicURL(s.publicBaseURL, key), nil
}

func (s *LocalObjectStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
