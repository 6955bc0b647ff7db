package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTokenRepo tracks revoked session tokens in PostgreSQL.
type PostgresTokenRepo struct {
	db *pgxpool.Pool
}

// NewPostgresTokenRepo creates a new token repository.
func NewPostgresTokenRepo(db *pgxpool.Pool) *PostgresTokenRepo {
	return &PostgresTokenRepo{db: db}
}

// Revoke records a token id as revoked.
func (r *PostgresTokenRepo) Revoke(ctx context.Context, jti string) error {
	query := `
		INSERT INTO revoked_tokens (jti, revoked_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, jti, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (r *PostgresTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	var revoked bool
	err := r.db.QueryRow(ctx, query, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}
