package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadService_UploadImage(t *testing.T) {
	ctx := context.Background()
	storage := new(MockObjectStorage)
	svc := NewUploadService(storage, 0, zap.NewNop())
	assert.Equal(t, DefaultMaxImageSize, svc.MaxSize())

	storage.On("Upload", ctx,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "images/image-") && strings.HasSuffix(key, ".png")
		}),
		"image/png", mock.Anything,
	).Return("/uploads/images/x.png", nil)

	resp, err := svc.UploadImage(ctx, "/images/", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/x.png", resp.URL)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Equal(t, int64(len(pngHeader)), resp.Size)
	storage.AssertExpectations(t)
}

func TestUploadService_Rejects(t *testing.T) {
	ctx := context.Background()
	storage := new(MockObjectStorage)
	svc := NewUploadService(storage, 1<<20, zap.NewNop())

	_, err := svc.UploadImage(ctx, "images", nil)
	assert.Equal(t, ErrNoFile, err)

	_, err = svc.UploadImage(ctx, "images", bytes.NewReader(nil))
	assert.Equal(t, ErrNoFile, err)

	_, err = svc.UploadImage(ctx, "images", strings.NewReader("plain text, not an image"))
	require.Error(t, err)
	assert.Equal(t, "Images only", err.Error())

	big := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)
	_, err = svc.UploadImage(ctx, "images", bytes.NewReader(big))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Contains(t, err.Error(), "1 MB")

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	storage := new(MockObjectStorage)
	svc := NewUploadService(storage, 0, zap.NewNop())
	storage.On("Upload", ctx, mock.Anything, "image/png", mock.Anything).Return("", errors.New("bucket gone"))

	_, err := svc.UploadImage(ctx, "images", bytes.NewReader(pngHeader))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}
