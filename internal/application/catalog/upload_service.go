package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxImageSize is the largest accepted image upload
const DefaultMaxImageSize int64 = 5 << 20

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	// ErrNoFile is returned when the request carries no file
	ErrNoFile = shared.NewInvalidInputError("No file uploaded")
	// ErrNotAnImage is returned for files that are not jpeg, png, webp or gif
	ErrNotAnImage = shared.NewInvalidInputError("Images only")
)

// UploadService validates image uploads and hands them to object storage
type UploadService struct {
	storage ObjectStorage
	maxSize int64
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService. maxSize <= 0 uses DefaultMaxImageSize.
func NewUploadService(storage ObjectStorage, maxSize int64, logger *zap.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &UploadService{storage: storage, maxSize: maxSize, logger: logger}
}

// MaxSize returns the upload size limit in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadImage stores an image under folder/<random>.<ext>. The type is
// detected from the content, not from the file name or client header.
func (s *UploadService) UploadImage(ctx context.Context, folder string, body io.Reader) (*UploadResponse, error) {
	if body == nil {
		return nil, ErrNoFile
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Image exceeds the %d MB limit", s.maxSize>>20))
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		s.logger.Warn("Rejected upload with unsupported content type",
			zap.String("content_type", contentType))
		return nil, ErrNotAnImage
	}

	key := path.Join(strings.Trim(folder, "/"), "image-"+uuid.NewString()+ext)
	url, err := s.storage.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))

	return &UploadResponse{
		URL:         url,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}
