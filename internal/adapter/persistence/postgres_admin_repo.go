package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL
type PostgresAdminRepository struct {
	db *sql.DB
}

// NewPostgresAdminRepository creates a new PostgreSQL admin repository
func NewPostgresAdminRepository(db *sql.DB) ports.AdminRepository {
	return &PostgresAdminRepository{db: db}
}

// Create saves a new admin user
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, admin.Username, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}

// FindByUsername retrieves an admin user by username
func (r *PostgresAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`

	var admin domain.AdminUser
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	return &admin, nil
}
