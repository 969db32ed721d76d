package persistence

import (
	"database/sql"
	"fmt"
)

// Schema statements, applied in order by Migrate. Rows are never deleted;
// elections, candidates, questions and precincts deactivate via flags.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS precincts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		capacity INT NOT NULL DEFAULT 1000,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS elections (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		election_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id BIGSERIAL PRIMARY KEY,
		election_id BIGINT NOT NULL REFERENCES elections(id),
		name TEXT NOT NULL,
		party TEXT,
		position TEXT NOT NULL,
		bio TEXT,
		ballot_order INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ballot_questions (
		id BIGSERIAL PRIMARY KEY,
		election_id BIGINT NOT NULL REFERENCES elections(id),
		question_text TEXT NOT NULL,
		question_type TEXT NOT NULL DEFAULT 'yes_no',
		max_selections INT NOT NULL DEFAULT 1,
		ballot_order INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS voters (
		id BIGSERIAL PRIMARY KEY,
		voter_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		address TEXT,
		precinct_id BIGINT NOT NULL REFERENCES precincts(id),
		date_of_birth DATE NOT NULL,
		has_voted BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id BIGSERIAL PRIMARY KEY,
		election_id BIGINT NOT NULL REFERENCES elections(id),
		voter_id_hash TEXT NOT NULL,
		candidate_id BIGINT REFERENCES candidates(id),
		ballot_question_id BIGINT REFERENCES ballot_questions(id),
		vote_value TEXT,
		precinct_id BIGINT NOT NULL REFERENCES precincts(id),
		booth_id TEXT NOT NULL,
		vote_hash TEXT NOT NULL,
		cast_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (
			(candidate_id IS NOT NULL AND ballot_question_id IS NULL) OR
			(candidate_id IS NULL AND ballot_question_id IS NOT NULL)
		)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_election ON votes (election_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_election_voter ON votes (election_id, voter_id_hash)`,
	`CREATE TABLE IF NOT EXISTS system_audit_log (
		id BIGSERIAL PRIMARY KEY,
		module TEXT NOT NULL,
		action TEXT NOT NULL,
		details JSONB,
		ip_address TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vote_audit_log (
		id BIGSERIAL PRIMARY KEY,
		vote_id BIGINT NOT NULL REFERENCES votes(id),
		action TEXT NOT NULL,
		details JSONB,
		ip_address TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS election_results (
		id BIGSERIAL PRIMARY KEY,
		election_id BIGINT NOT NULL UNIQUE REFERENCES elections(id),
		results_data JSONB NOT NULL,
		calculated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

// Seed inserts a demo precinct and a draft election for local development.
func Seed(db *sql.DB) error {
	var precinctID int64
	err := db.QueryRow(
		`INSERT INTO precincts (name, address, capacity) VALUES ($1, $2, $3) RETURNING id`,
		"Central Precinct", "1 Main Street", 1500,
	).Scan(&precinctID)
	if err != nil {
		return fmt.Errorf("failed to seed precinct: %w", err)
	}

	var electionID int64
	err = db.QueryRow(
		`INSERT INTO elections (name, description, election_date, start_time, end_time, status)
		 VALUES ($1, $2, CURRENT_DATE, '08:00:00', '20:00:00', 'draft') RETURNING id`,
		"Demo Municipal Election", "Seeded election for local development",
	).Scan(&electionID)
	if err != nil {
		return fmt.Errorf("failed to seed election: %w", err)
	}

	candidates := []struct {
		name, party, position string
		order                 int
	}{
		{"Alice Warren", "Unity Party", "Mayor", 1},
		{"Bob Keller", "Progress Party", "Mayor", 2},
		{"Carol Diaz", "Unity Party", "Treasurer", 1},
	}
	for _, c := range candidates {
		if _, err := db.Exec(
			`INSERT INTO candidates (election_id, name, party, position, ballot_order) VALUES ($1, $2, $3, $4, $5)`,
			electionID, c.name, c.party, c.position, c.order,
		); err != nil {
			return fmt.Errorf("failed to seed candidate: %w", err)
		}
	}

	if _, err := db.Exec(
		`INSERT INTO ballot_questions (election_id, question_text, question_type, ballot_order)
		 VALUES ($1, $2, 'yes_no', 1)`,
		electionID, "Should the city fund the new library?",
	); err != nil {
		return fmt.Errorf("failed to seed ballot question: %w", err)
	}

	return nil
}
