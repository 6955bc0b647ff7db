package repository

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NameSentinel is the highest code point used as the upper bound of
// prefix range queries over the listing name sort key.
const NameSentinel = "\uf8ff"

// PrefixRange returns the inclusive bounds of the range query matching
// all names starting with the given upper-cased prefix.
func PrefixRange(prefix string) (lo, hi string) {
	return prefix, prefix + NameSentinel
}

// PostgresListingRepo is the PostgreSQL-backed listing repository.
type PostgresListingRepo struct {
	db *pgxpool.Pool
}

// NewPostgresListingRepo creates a new listing repository.
func NewPostgresListingRepo(db *pgxpool.Pool) *PostgresListingRepo {
	return &PostgresListingRepo{db: db}
}

const listingColumns = `id, name, model, whatsapp, city, year, km, price, description, created_at, owner_name, owner_uid, images`

// Create persists a listing with its images in list form.
func (r *PostgresListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	images, err := json.Marshal(listing.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.db.Exec(ctx, query,
		listing.ID, listing.Name, listing.Model, listing.Whatsapp, listing.City,
		listing.Year, listing.KM, listing.Price, listing.Description,
		listing.CreatedAt, listing.Owner, listing.OwnerUID, images,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by id. Returns nil when not found.
func (r *PostgresListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// ListAll returns all listings, newest creation timestamp first.
func (r *PostgresListingRepo) ListAll(ctx context.Context) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// ListByOwner returns the listings owned by the given user.
func (r *PostgresListingRepo) ListByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE owner_uid = $1`

	rows, err := r.db.Query(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings by owner: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// SearchByNamePrefix runs the range query [prefix, prefix+sentinel] over
// the name sort key. The prefix must already be upper-cased.
func (r *PostgresListingRepo) SearchByNamePrefix(ctx context.Context, prefix string) ([]*models.Listing, error) {
	lo, hi := PrefixRange(prefix)
	query := `SELECT ` + listingColumns + ` FROM listings WHERE name >= $1 AND name <= $2`

	rows, err := r.db.Query(ctx, query, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// Delete removes a listing record. Returns ErrListingNotFound when the
// row no longer exists.
func (r *PostgresListingRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM listings WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	var listing models.Listing
	var images []byte
	err := row.Scan(
		&listing.ID, &listing.Name, &listing.Model, &listing.Whatsapp,
		&listing.City, &listing.Year, &listing.KM, &listing.Price,
		&listing.Description, &listing.CreatedAt, &listing.Owner,
		&listing.OwnerUID, &images,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &listing.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	return &listing, nil
}

func collectListings(rows pgx.Rows) ([]*models.Listing, error) {
	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}
	return listings, nil
}
