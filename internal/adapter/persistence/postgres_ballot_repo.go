package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresBallotRepository implements BallotRepository using PostgreSQL
type PostgresBallotRepository struct {
	db *sql.DB
}

// NewPostgresBallotRepository creates a new PostgreSQL ballot repository
func NewPostgresBallotRepository(db *sql.DB) ports.BallotRepository {
	return &PostgresBallotRepository{db: db}
}

// AddCandidate saves a new candidate
func (r *PostgresBallotRepository) AddCandidate(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (election_id, name, party, position, bio, ballot_order, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		candidate.ElectionID,
		candidate.Name,
		candidate.Party,
		candidate.Position,
		candidate.Bio,
		candidate.BallotOrder,
	).Scan(&candidate.ID, &candidate.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to add candidate: %w", err)
	}

	candidate.Active = true
	return nil
}

// AddQuestion saves a new ballot question
func (r *PostgresBallotRepository) AddQuestion(ctx context.Context, question *domain.BallotQuestion) error {
	query := `
		INSERT INTO ballot_questions (election_id, question_text, question_type, max_selections, ballot_order, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		question.ElectionID,
		question.QuestionText,
		string(question.QuestionType),
		question.MaxSelections,
		question.BallotOrder,
	).Scan(&question.ID, &question.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to add ballot question: %w", err)
	}

	question.Active = true
	return nil
}

// ListCandidates returns active candidates ordered by position,
// ballot_order, name
func (r *PostgresBallotRepository) ListCandidates(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	query := `
		SELECT id, election_id, name, party, position, bio, ballot_order, active, created_at
		FROM candidates
		WHERE election_id = $1 AND active = TRUE
		ORDER BY position, ballot_order, name
	`

	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		var party, bio sql.NullString

		err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &party, &c.Position, &bio, &c.BallotOrder, &c.Active, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		if party.Valid {
			c.Party = &party.String
		}
		if bio.Valid {
			c.Bio = &bio.String
		}

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// ListQuestions returns active questions ordered by ballot_order, id
func (r *PostgresBallotRepository) ListQuestions(ctx context.Context, electionID int64) ([]domain.BallotQuestion, error) {
	query := `
		SELECT id, election_id, question_text, question_type, max_selections, ballot_order, active, created_at
		FROM ballot_questions
		WHERE election_id = $1 AND active = TRUE
		ORDER BY ballot_order, id
	`

	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballot questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.BallotQuestion
	for rows.Next() {
		var q domain.BallotQuestion
		err := rows.Scan(&q.ID, &q.ElectionID, &q.QuestionText, &q.QuestionType, &q.MaxSelections, &q.BallotOrder, &q.Active, &q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ballot question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballot questions: %w", err)
	}

	return questions, nil
}

// CountActiveCandidates returns the number of active candidates platform-wide
func (r *PostgresBallotRepository) CountActiveCandidates(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}
