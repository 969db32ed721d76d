package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresResultsCacheRepository implements ResultsCacheRepository using
// the election_results table. The cache is write-through on recalculation
// and never invalidated automatically.
type PostgresResultsCacheRepository struct {
	db *sql.DB
}

// NewPostgresResultsCacheRepository creates a new results cache repository
func NewPostgresResultsCacheRepository(db *sql.DB) ports.ResultsCacheRepository {
	return &PostgresResultsCacheRepository{db: db}
}

// Get returns the cached snapshot for the election, or nil when absent
func (r *PostgresResultsCacheRepository) Get(ctx context.Context, electionID int64) (*domain.ElectionResults, error) {
	var resultsJSON []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT results_data FROM election_results WHERE election_id = $1`, electionID).Scan(&resultsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached results: %w", err)
	}

	var results domain.ElectionResults
	if err := json.Unmarshal(resultsJSON, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached results: %w", err)
	}

	return &results, nil
}

// Upsert stores the snapshot, replacing any previous one for the election
func (r *PostgresResultsCacheRepository) Upsert(ctx context.Context, electionID int64, results *domain.ElectionResults) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO election_results (election_id, results_data, calculated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (election_id) DO UPDATE
		 SET results_data = EXCLUDED.results_data, calculated_at = NOW()`,
		electionID, resultsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to cache results: %w", err)
	}

	return nil
}
