// Package repository defines persistence interfaces and their PostgreSQL
// implementations.
package repository

import (
	"context"

	"carmarket/internal/models"
)

// ListingRepository handles persistence of car listings.
type ListingRepository interface {
	// Create persists a listing. The listing must already carry its
	// generated id and creation timestamp.
	Create(ctx context.Context, listing *models.Listing) error

	// GetByID retrieves a listing by id. Returns nil when not found.
	GetByID(ctx context.Context, id string) (*models.Listing, error)

	// ListAll returns all listings ordered by creation timestamp, newest first.
	ListAll(ctx context.Context) ([]*models.Listing, error)

	// ListByOwner returns the listings owned by the given user.
	// No ordering is guaranteed.
	ListByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error)

	// SearchByNamePrefix returns listings whose name falls in the
	// range [prefix, prefix+sentinel]. The prefix must already be upper-cased.
	SearchByNamePrefix(ctx context.Context, prefix string) ([]*models.Listing, error)

	// Delete removes a listing record.
	Delete(ctx context.Context, id string) error
}

// UserRepository handles persistence of seller accounts.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by id. Returns nil when not found.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email. Returns nil when not found.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenRepository tracks revoked session tokens.
type TokenRepository interface {
	// Revoke records a token id as revoked.
	Revoke(ctx context.Context, jti string) error

	// IsRevoked reports whether a token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
