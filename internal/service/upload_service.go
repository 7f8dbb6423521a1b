package service

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/storage"
)

// allowedImageTypes lists the raster formats accepted for upload. Images are
// served from the API origin, so scriptable formats such as SVG stay out.
var allowedImageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
}

// SavedImage describes a stored upload.
type SavedImage struct {
	Filename string
	MimeType string
}

// UploadService validates image uploads before handing them to storage.
type UploadService interface {
	SaveImage(ctx context.Context, name string, r io.Reader) (*SavedImage, error)
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
}

// NewUploadService creates an upload service that accepts blobs up to maxBytes.
func NewUploadService(store storage.Storage, maxBytes int64) UploadService {
	return &uploadService{store: store, maxBytes: maxBytes}
}

// SaveImage stores r under the sanitized form of name when it is a raster
// image no larger than the limit.
func (s *uploadService) SaveImage(ctx context.Context, name string, r io.Reader) (*SavedImage, error) {
	clean, err := storage.SanitizeFilename(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, apperrors.ErrNoFile
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, apperrors.ErrUnsupportedMedia
	}

	if err := s.store.Save(ctx, clean, data); err != nil {
		return nil, err
	}
	return &SavedImage{Filename: clean, MimeType: mtype.String()}, nil
}
