package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresPrecinctRepository implements PrecinctRepository using PostgreSQL
type PostgresPrecinctRepository struct {
	db *sql.DB
}

// NewPostgresPrecinctRepository creates a new PostgreSQL precinct repository
func NewPostgresPrecinctRepository(db *sql.DB) ports.PrecinctRepository {
	return &PostgresPrecinctRepository{db: db}
}

// Create saves a new precinct
func (r *PostgresPrecinctRepository) Create(ctx context.Context, precinct *domain.Precinct) error {
	query := `
		INSERT INTO precincts (name, address, capacity, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		precinct.Name,
		precinct.Address,
		precinct.Capacity,
	).Scan(&precinct.ID, &precinct.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create precinct: %w", err)
	}

	precinct.Active = true
	return nil
}

// ListActive returns active precincts ordered by name
func (r *PostgresPrecinctRepository) ListActive(ctx context.Context) ([]domain.Precinct, error) {
	query := `
		SELECT id, name, address, capacity, active, created_at
		FROM precincts
		WHERE active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list precincts: %w", err)
	}
	defer rows.Close()

	var precincts []domain.Precinct
	for rows.Next() {
		var p domain.Precinct
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Capacity, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan precinct: %w", err)
		}
		precincts = append(precincts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating precincts: %w", err)
	}

	return precincts, nil
}

// CountActive returns the number of active precincts
func (r *PostgresPrecinctRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM precincts WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count precincts: %w", err)
	}
	return count, nil
}
