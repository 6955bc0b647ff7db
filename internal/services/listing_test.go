package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/metrics"
	"carmarket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testOwner = models.Session{UID: "uid-1", Name: "Ana", Email: "ana@example.com"}

func testImages() []models.ListingImage {
	return []models.ListingImage{
		{UID: "uid-1", Name: "img-a", URL: "https://blobs.example/images/uid-1/img-a"},
	}
}

func TestSearchEmptyPrefixListsAll(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	all := []*models.Listing{{ID: "1", Name: "ONIX"}}
	repo.On("ListAll", mock.Anything).Return(all, nil)

	for _, prefix := range []string{"", "   ", "\t"} {
		got, err := svc.Search(context.Background(), prefix)
		require.NoError(t, err)
		assert.Equal(t, all, got)
	}

	repo.AssertNotCalled(t, "SearchByNamePrefix", mock.Anything, mock.Anything)
}

func TestSearchUppercasesPrefix(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	matches := []*models.Listing{{ID: "1", Name: "ONIX"}}
	repo.On("SearchByNamePrefix", mock.Anything, "ONIX").Return(matches, nil)

	got, err := svc.Search(context.Background(), "onix")
	require.NoError(t, err)
	assert.Equal(t, matches, got)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestSearchRemoteFailure(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	repo.On("SearchByNamePrefix", mock.Anything, "GOL").Return(nil, errors.New("connection refused"))

	_, err := svc.Search(context.Background(), "gol")
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
}

func TestCreateRejectsEmptyImages(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	_, err := svc.Create(context.Background(), ListingFields{Name: "onix"}, nil, testOwner)
	assert.ErrorIs(t, err, apperrors.ErrNoImages)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAssignsFieldsAndUppercasesName(t *testing.T) {
	repo := new(MockListingRepository)
	rec := &stubRecorder{}
	svc := NewListingService(repo, &countingBlobStore{}, nil, rec)

	var stored *models.Listing
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Listing")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Listing)
		}).
		Return(nil)

	fields := ListingFields{
		Name:        "onix",
		Model:       "1.0 Flex",
		Whatsapp:    "01199829926",
		City:        "São Paulo - SP",
		Year:        "2016",
		KM:          "23.900",
		Price:       "68.000",
		Description: "Well kept",
	}

	before := time.Now()
	listing, err := svc.Create(context.Background(), fields, testImages(), testOwner)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Same(t, stored, listing)

	assert.Equal(t, "ONIX", stored.Name)
	assert.Equal(t, "2016", stored.Year)
	assert.Equal(t, "23.900", stored.KM)
	assert.Equal(t, "68.000", stored.Price)
	assert.Equal(t, testOwner.UID, stored.OwnerUID)
	assert.Equal(t, testOwner.Name, stored.Owner)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.Before(before))
	assert.Len(t, stored.Images, 1)
	assert.EqualValues(t, 1, rec.created.Load())
}

func TestCreateRemoteFailureKeepsNothing(t *testing.T) {
	repo := new(MockListingRepository)
	rec := &stubRecorder{}
	svc := NewListingService(repo, &countingBlobStore{}, nil, rec)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("timeout"))

	_, err := svc.Create(context.Background(), ListingFields{Name: "onix"}, testImages(), testOwner)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
	assert.EqualValues(t, 0, rec.created.Load())
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	repo.On("GetByID", mock.Anything, "l1").Return(&models.Listing{
		ID:       "l1",
		OwnerUID: "someone-else",
		Images:   testImages(),
	}, nil)

	err := svc.Delete(context.Background(), "l1", testOwner)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMissingListing(t *testing.T) {
	repo := new(MockListingRepository)
	svc := NewListingService(repo, &countingBlobStore{}, nil, metrics.Noop{})

	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	err := svc.Delete(context.Background(), "nope", testOwner)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
}

func TestDeleteSurvivesBlobFailures(t *testing.T) {
	repo := new(MockListingRepository)
	blobs := &countingBlobStore{err: errors.New("access denied")}
	rec := &stubRecorder{}
	svc := NewListingService(repo, blobs, nil, rec)

	images := []models.ListingImage{
		{UID: "uid-1", Name: "a"},
		{UID: "uid-1", Name: "b"},
		{UID: "uid-1", Name: "c"},
	}
	repo.On("GetByID", mock.Anything, "l1").Return(&models.Listing{
		ID:       "l1",
		OwnerUID: testOwner.UID,
		Images:   images,
	}, nil)
	repo.On("Delete", mock.Anything, "l1").Return(nil)

	// The record deletion must succeed no matter how many blob
	// deletions fail afterwards.
	err := svc.Delete(context.Background(), "l1", testOwner)
	require.NoError(t, err)
	repo.AssertCalled(t, "Delete", mock.Anything, "l1")

	// All blob deletions are still issued, and every failure is counted.
	assert.Eventually(t, func() bool {
		return blobs.deleteCount() == len(images)
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return rec.cleanupFailures.Load() == int64(len(images))
	}, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, rec.deleted.Load())
}

func TestDeleteRowVanishedBeforeDelete(t *testing.T) {
	repo := new(MockListingRepository)
	blobs := &countingBlobStore{}
	svc := NewListingService(repo, blobs, nil, metrics.Noop{})

	repo.On("GetByID", mock.Anything, "l1").Return(&models.Listing{
		ID:       "l1",
		OwnerUID: testOwner.UID,
		Images:   testImages(),
	}, nil)
	repo.On("Delete", mock.Anything, "l1").Return(apperrors.ErrListingNotFound)

	// A row deleted concurrently between the ownership check and the
	// delete surfaces as not-found, not as a backend failure.
	err := svc.Delete(context.Background(), "l1", testOwner)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrRemoteUnavailable)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, blobs.deleteCount())
}

func TestDeleteRecordFailureLeavesBlobs(t *testing.T) {
	repo := new(MockListingRepository)
	blobs := &countingBlobStore{}
	svc := NewListingService(repo, blobs, nil, metrics.Noop{})

	repo.On("GetByID", mock.Anything, "l1").Return(&models.Listing{
		ID:       "l1",
		OwnerUID: testOwner.UID,
		Images:   testImages(),
	}, nil)
	repo.On("Delete", mock.Anything, "l1").Return(errors.New("timeout"))

	err := svc.Delete(context.Background(), "l1", testOwner)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)

	// No blob deletion happens when the record deletion failed.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, blobs.deleteCount())
}
