package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/metrics"
	"carmarket/internal/models"
	"carmarket/internal/repository"
	"carmarket/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ListingFields are the validated form fields of a new listing.
// Year, km and price stay opaque strings end-to-end.
type ListingFields struct {
	Name        string
	Model       string
	Whatsapp    string
	City        string
	Year        string
	KM          string
	Price       string
	Description string
}

// ListingService handles listing-related business logic
type ListingService struct {
	listings repository.ListingRepository
	blobs    storage.BlobStore
	feed     *FeedHub
	metrics  metrics.Recorder
}

// NewListingService creates a new listing service. The feed hub may be nil.
func NewListingService(listings repository.ListingRepository, blobs storage.BlobStore, feed *FeedHub, rec metrics.Recorder) *ListingService {
	return &ListingService{
		listings: listings,
		blobs:    blobs,
		feed:     feed,
		metrics:  rec,
	}
}

// ListAll returns all listings, newest first.
func (s *ListingService) ListAll(ctx context.Context) ([]*models.Listing, error) {
	listings, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, remoteErr(err)
	}
	return listings, nil
}

// ListByOwner returns the listings owned by the given user.
func (s *ListingService) ListByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error) {
	listings, err := s.listings.ListByOwner(ctx, ownerUID)
	if err != nil {
		return nil, remoteErr(err)
	}
	return listings, nil
}

// GetByID retrieves a single listing.
func (s *ListingService) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, remoteErr(err)
	}
	if listing == nil {
		return nil, apperrors.ErrListingNotFound
	}
	return listing, nil
}

// Search returns the listings whose upper-cased name starts with the
// given prefix. An empty or whitespace-only prefix means "all listings",
// as an explicit branch, not a query default.
func (s *ListingService) Search(ctx context.Context, prefix string) ([]*models.Listing, error) {
	if strings.TrimSpace(prefix) == "" {
		return s.ListAll(ctx)
	}

	listings, err := s.listings.SearchByNamePrefix(ctx, strings.ToUpper(prefix))
	if err != nil {
		return nil, remoteErr(err)
	}
	return listings, nil
}

// Create publishes a new listing. The name is stored upper-cased and the
// creation timestamp is assigned here. The images list must be non-empty;
// this is re-checked even though the form boundary already validates it.
func (s *ListingService) Create(ctx context.Context, fields ListingFields, images []models.ListingImage, owner models.Session) (*models.Listing, error) {
	if len(images) == 0 {
		return nil, apperrors.ErrNoImages
	}

	listing := &models.Listing{
		ID:          uuid.New().String(),
		Name:        strings.ToUpper(fields.Name),
		Model:       fields.Model,
		Whatsapp:    fields.Whatsapp,
		City:        fields.City,
		Year:        fields.Year,
		KM:          fields.KM,
		Price:       fields.Price,
		Description: fields.Description,
		CreatedAt:   time.Now(),
		Owner:       owner.Name,
		OwnerUID:    owner.UID,
		Images:      images,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, remoteErr(err)
	}

	s.metrics.RecordListingCreated()
	if s.feed != nil {
		s.feed.Broadcast(FeedEvent{Type: "listing_created", Listing: listing})
	}

	return listing, nil
}

// Delete removes a listing owned by the caller. The record deletion is
// primary; blob deletions are issued afterwards fire-and-forget, each
// failure logged individually. A leaked blob never rolls back or fails
// the record deletion.
func (s *ListingService) Delete(ctx context.Context, id string, owner models.Session) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return remoteErr(err)
	}
	if listing == nil {
		return apperrors.ErrListingNotFound
	}
	if listing.OwnerUID != owner.UID {
		return apperrors.ErrNotOwner
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		// The row can vanish between the ownership check and the delete.
		if errors.Is(err, apperrors.ErrListingNotFound) {
			return err
		}
		return remoteErr(err)
	}

	for _, image := range listing.Images {
		go func(image models.ListingImage) {
			key := ImageKey(image.UID, image.Name)
			if err := s.blobs.Delete(context.Background(), key); err != nil {
				log.Error().
					Err(err).
					Str("listing_id", id).
					Str("key", key).
					Msg("Failed to delete listing image blob")
				s.metrics.RecordBlobCleanupFailure()
			}
		}(image)
	}

	s.metrics.RecordListingDeleted()
	if s.feed != nil {
		s.feed.Broadcast(FeedEvent{Type: "listing_deleted", ListingID: id})
	}

	return nil
}

// remoteErr marks a storage failure as a remote-backend error.
func remoteErr(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
}
