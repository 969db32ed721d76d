package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresVoterRepository implements VoterRepository using PostgreSQL
type PostgresVoterRepository struct {
	db *sql.DB
}

// NewPostgresVoterRepository creates a new PostgreSQL voter repository
func NewPostgresVoterRepository(db *sql.DB) ports.VoterRepository {
	return &PostgresVoterRepository{db: db}
}

// Create saves a new voter
func (r *PostgresVoterRepository) Create(ctx context.Context, voter *domain.Voter) error {
	query := `
		INSERT INTO voters (voter_id, first_name, last_name, email, phone, address, precinct_id, date_of_birth, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		voter.VoterID,
		voter.FirstName,
		voter.LastName,
		voter.Email,
		voter.Phone,
		voter.Address,
		voter.PrecinctID,
		voter.DateOfBirth,
		string(voter.Status),
	).Scan(&voter.ID, &voter.CreatedAt, &voter.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create voter: %w", err)
	}

	return nil
}

// FindByVoterID retrieves an active voter by public voter id, with the
// precinct name joined in
func (r *PostgresVoterRepository) FindByVoterID(ctx context.Context, voterID string) (*domain.Voter, error) {
	query := `
		SELECT v.id, v.voter_id, v.first_name, v.last_name, v.email, v.phone, v.address,
			v.precinct_id, p.name, to_char(v.date_of_birth, 'YYYY-MM-DD'),
			v.has_voted, v.status, v.created_at, v.updated_at
		FROM voters v
		LEFT JOIN precincts p ON v.precinct_id = p.id
		WHERE v.voter_id = $1 AND v.status = 'active'
	`

	var voter domain.Voter
	var phone, address, precinctName sql.NullString

	err := r.db.QueryRowContext(ctx, query, voterID).Scan(
		&voter.ID,
		&voter.VoterID,
		&voter.FirstName,
		&voter.LastName,
		&voter.Email,
		&phone,
		&address,
		&voter.PrecinctID,
		&precinctName,
		&voter.DateOfBirth,
		&voter.HasVoted,
		&voter.Status,
		&voter.CreatedAt,
		&voter.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to find voter: %w", err)
	}

	if phone.Valid {
		voter.Phone = &phone.String
	}
	if address.Valid {
		voter.Address = &address.String
	}
	if precinctName.Valid {
		voter.PrecinctName = &precinctName.String
	}

	return &voter, nil
}

// VoterIDExists checks whether a generated voter id is already taken
func (r *PostgresVoterRepository) VoterIDExists(ctx context.Context, voterID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters WHERE voter_id = $1`, voterID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check voter id: %w", err)
	}
	return count > 0, nil
}

// EmailExists checks whether an email is already registered
func (r *PostgresVoterRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// CountActive returns the number of active registered voters
func (r *PostgresVoterRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return count, nil
}
