package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

const electionColumns = `id, name, description,
	to_char(election_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	status, created_at, updated_at`

// PostgresElectionRepository implements ElectionRepository using PostgreSQL
type PostgresElectionRepository struct {
	db *sql.DB
}

// NewPostgresElectionRepository creates a new PostgreSQL election repository
func NewPostgresElectionRepository(db *sql.DB) ports.ElectionRepository {
	return &PostgresElectionRepository{db: db}
}

// Create saves a new election
func (r *PostgresElectionRepository) Create(ctx context.Context, election *domain.Election) error {
	query := `
		INSERT INTO elections (name, description, election_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		election.Name,
		election.Description,
		election.ElectionDate,
		election.StartTime,
		election.EndTime,
		string(election.Status),
	).Scan(&election.ID, &election.CreatedAt, &election.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create election: %w", err)
	}

	return nil
}

// FindByID retrieves an election by its ID
func (r *PostgresElectionRepository) FindByID(ctx context.Context, id int64) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = $1`

	election, err := scanElection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("failed to find election: %w", err)
	}

	return election, nil
}

// List returns all elections newest first with candidate and distinct-voter
// counts
func (r *PostgresElectionRepository) List(ctx context.Context) ([]domain.ElectionSummary, error) {
	query := `
		SELECT ` + electionColumns + `,
			(SELECT COUNT(*) FROM candidates WHERE election_id = elections.id AND active = TRUE),
			(SELECT COUNT(DISTINCT voter_id_hash) FROM votes WHERE election_id = elections.id)
		FROM elections
		ORDER BY election_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ElectionSummary
	for rows.Next() {
		var s domain.ElectionSummary
		err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.ElectionDate, &s.StartTime, &s.EndTime,
			&s.Status, &s.CreatedAt, &s.UpdatedAt, &s.CandidateCount, &s.VotesCast,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}

	return summaries, nil
}

// ListActiveAt returns elections open for voting at the given moment,
// ordered by name. The window check is re-evaluated on every call.
func (r *PostgresElectionRepository) ListActiveAt(ctx context.Context, now time.Time) ([]domain.Election, error) {
	query := `
		SELECT ` + electionColumns + `
		FROM elections
		WHERE status = 'active'
		AND election_date = $1::date
		AND $2::time BETWEEN start_time AND end_time
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, now.Format("2006-01-02"), now.Format("15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to list active elections: %w", err)
	}
	defer rows.Close()

	var elections []domain.Election
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, *election)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active elections: %w", err)
	}

	return elections, nil
}

// UpdateStatus moves an election to a new lifecycle status
func (r *PostgresElectionRepository) UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) error {
	query := `UPDATE elections SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update election status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrElectionNotFound
	}

	return nil
}

// CountAll returns the total number of elections
func (r *PostgresElectionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elections`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count elections: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of elections in the given status
func (r *PostgresElectionRepository) CountByStatus(ctx context.Context, status domain.ElectionStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elections WHERE status = $1`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count elections by status: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanElection(row rowScanner) (*domain.Election, error) {
	var e domain.Election
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.ElectionDate, &e.StartTime, &e.EndTime,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
