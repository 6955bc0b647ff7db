package services

import (
	"context"
	"fmt"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/metrics"
	"carmarket/internal/models"
	"carmarket/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImageKey returns the blob path of a listing image.
func ImageKey(uid, name string) string {
	return fmt.Sprintf("images/%s/%s", uid, name)
}

// UploadService runs the per-image upload flow: validate, upload,
// resolve URL. Each image moves through the flow strictly sequentially.
type UploadService struct {
	blobs   storage.BlobStore
	metrics metrics.Recorder
}

// NewUploadService creates a new upload service.
func NewUploadService(blobs storage.BlobStore, rec metrics.Recorder) *UploadService {
	return &UploadService{
		blobs:   blobs,
		metrics: rec,
	}
}

// Upload validates the file content and writes it to the blob store under
// images/{uid}/{generated name}. Only JPEG and PNG content is accepted;
// anything else is rejected before any blob write happens.
func (s *UploadService) Upload(ctx context.Context, uid string, data []byte) (*models.ListingImage, error) {
	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		s.metrics.RecordUploadRejected()
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, mtype.String())
	}

	name := uuid.New().String()
	key := ImageKey(uid, name)

	if err := s.blobs.Put(ctx, key, data, mtype.String()); err != nil {
		return nil, remoteErr(err)
	}

	s.metrics.RecordUploadAccepted()
	return &models.ListingImage{
		UID:  uid,
		Name: name,
		URL:  s.blobs.URL(key),
	}, nil
}

// Delete removes an uploaded image's blob before the listing is submitted.
// On failure the error is returned so the caller keeps its local entry and
// the user can retry; this deliberately differs from the best-effort
// cleanup on listing deletion.
func (s *UploadService) Delete(ctx context.Context, uid, name string) error {
	key := ImageKey(uid, name)
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to delete uploaded image blob")
		return remoteErr(err)
	}
	return nil
}
