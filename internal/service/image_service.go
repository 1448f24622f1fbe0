package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/events"
	"github.com/spec-kit/codepulse/internal/repository"
	"github.com/spec-kit/codepulse/internal/storage"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

const maxImageSizeBytes = 10 * 1024 * 1024

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ImageUpload carries a validated upload request.
type ImageUpload struct {
	OriginalName string
	FileName     string
	Title        string
	Data         []byte
}

// ImageService validates uploads, stores blobs and records metadata.
type ImageService struct {
	images     repository.ImageRepository
	blobs      storage.BlobStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewImageService builds the service.
func NewImageService(images repository.ImageRepository, blobs storage.BlobStore, dispatcher events.Dispatcher, logger *zap.Logger) *ImageService {
	return &ImageService{images: images, blobs: blobs, dispatcher: dispatcher, logger: logger}
}

// Upload validates extension and size, pushes the blob to object storage
// and records the image row.
func (s *ImageService) Upload(ctx context.Context, upload ImageUpload) (*domain.Image, error) {
	extension := strings.ToLower(filepath.Ext(upload.OriginalName))
	if _, ok := allowedImageExtensions[extension]; !ok {
		return nil, apperrors.NewBadRequest("unsupported file format")
	}
	if len(upload.Data) == 0 || len(upload.Data) > maxImageSizeBytes {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("file size must be between 1 byte and %d bytes", maxImageSizeBytes))
	}

	key := storage.NewStorageKey(extension)
	contentType := mime.TypeByExtension(extension)
	if err := s.blobs.Put(ctx, key, contentType, upload.Data); err != nil {
		return nil, err
	}

	image := &domain.Image{
		FileName:      upload.FileName,
		FileExtension: extension,
		Title:         upload.Title,
		URL:           s.blobs.PublicURL(key),
		StorageKey:    key,
	}
	if err := s.images.Create(ctx, image); err != nil {
		// The blob is orphaned; keep it and let a bucket lifecycle rule reap it.
		s.logger.Warn("image metadata insert failed after upload",
			zap.String("storage_key", key),
			zap.Error(err))
		return nil, err
	}

	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventImageUploaded,
			Timestamp: time.Now(),
			Payload: events.ImageUploadedPayload{
				ImageID:    image.ID,
				StorageKey: key,
			},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("image event handlers failed", zap.Error(err))
		}
	}

	return image, nil
}

// List returns all uploaded images, newest first.
func (s *ImageService) List(ctx context.Context) ([]domain.Image, error) {
	return s.images.List(ctx)
}
