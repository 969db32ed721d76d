package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// PostgresVoteRepository implements VoteRepository using PostgreSQL
type PostgresVoteRepository struct {
	db *sql.DB
}

// NewPostgresVoteRepository creates a new PostgreSQL vote repository
func NewPostgresVoteRepository(db *sql.DB) ports.VoteRepository {
	return &PostgresVoteRepository{db: db}
}

// CastBallot runs the cast-vote transaction: lock and re-check the voter
// row, insert every vote row with its audit record, flip has_voted, commit.
// Any failure rolls back the whole unit; the voter and votes tables are
// left exactly as before the call.
func (r *PostgresVoteRepository) CastBallot(ctx context.Context, cast ports.BallotCast) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The row lock serializes concurrent casts for the same voter; the
	// loser of the race sees has_voted = true here.
	var hasVoted bool
	err = tx.QueryRowContext(ctx,
		`SELECT has_voted FROM voters WHERE voter_id = $1 AND status = 'active' FOR UPDATE`,
		cast.VoterID,
	).Scan(&hasVoted)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrVoterNotFound
		}
		return 0, fmt.Errorf("failed to lock voter row: %w", err)
	}
	if hasVoted {
		return 0, domain.NewEligibilityError("You have already voted in this election")
	}

	votesInserted := 0

	for _, cv := range cast.CandidateVotes {
		var voteID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO votes (election_id, voter_id_hash, candidate_id, precinct_id, booth_id, vote_hash, cast_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())
			 RETURNING id`,
			cast.ElectionID, cast.VoterIDHash, cv.CandidateID, cast.PrecinctID, cast.BoothID, cv.VoteHash,
		).Scan(&voteID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert candidate vote: %w", err)
		}

		if err := logVoteAction(ctx, tx, voteID, "cast", map[string]interface{}{
			"position":     cv.Position,
			"candidate_id": cv.CandidateID,
			"booth_id":     cast.BoothID,
		}, cast.IPAddress); err != nil {
			return 0, err
		}

		votesInserted++
	}

	for _, qv := range cast.QuestionVotes {
		var voteID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO votes (election_id, voter_id_hash, ballot_question_id, vote_value, precinct_id, booth_id, vote_hash, cast_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			 RETURNING id`,
			cast.ElectionID, cast.VoterIDHash, qv.QuestionID, qv.Answer, cast.PrecinctID, cast.BoothID, qv.VoteHash,
		).Scan(&voteID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert question vote: %w", err)
		}

		if err := logVoteAction(ctx, tx, voteID, "cast", map[string]interface{}{
			"question_id": qv.QuestionID,
			"answer":      qv.Answer,
			"booth_id":    cast.BoothID,
		}, cast.IPAddress); err != nil {
			return 0, err
		}

		votesInserted++
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE voters SET has_voted = TRUE, updated_at = NOW() WHERE voter_id = $1`,
		cast.VoterID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark voter as voted: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, domain.ErrVoterNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	return votesInserted, nil
}

func logVoteAction(ctx context.Context, tx *sql.Tx, voteID int64, action string, details map[string]interface{}, ip string) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal vote audit details: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vote_audit_log (vote_id, action, details, ip_address, timestamp)
		 VALUES ($1, $2, $3, $4, NOW())`,
		voteID, action, detailsJSON, ip,
	)
	if err != nil {
		return fmt.Errorf("failed to write vote audit entry: %w", err)
	}

	return nil
}

// CandidateTallies counts votes per active candidate. The percentage
// denominator is every candidate vote in the election, not the votes for
// that candidate's position.
func (r *PostgresVoteRepository) CandidateTallies(ctx context.Context, electionID int64) ([]domain.CandidateResult, error) {
	query := `
		SELECT c.id, c.name, c.party, c.position, c.ballot_order,
			COUNT(v.id) AS vote_count,
			ROUND(COUNT(v.id) * 100.0 / NULLIF(
				(SELECT COUNT(*) FROM votes WHERE election_id = $1 AND candidate_id IS NOT NULL), 0), 2) AS percentage
		FROM candidates c
		LEFT JOIN votes v ON c.id = v.candidate_id AND v.election_id = $1
		WHERE c.election_id = $1 AND c.active = TRUE
		GROUP BY c.id, c.name, c.party, c.position, c.ballot_order
		ORDER BY c.position, vote_count DESC, c.ballot_order
	`

	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate tallies: %w", err)
	}
	defer rows.Close()

	var results []domain.CandidateResult
	for rows.Next() {
		var cr domain.CandidateResult
		var party sql.NullString
		var percentage sql.NullFloat64

		err := rows.Scan(&cr.CandidateID, &cr.Name, &party, &cr.Position, &cr.BallotOrder, &cr.VoteCount, &percentage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate tally: %w", err)
		}

		if party.Valid {
			cr.Party = &party.String
		}
		if percentage.Valid {
			cr.Percentage = percentage.Float64
		}

		results = append(results, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate tallies: %w", err)
	}

	return results, nil
}

// QuestionResponses counts responses per distinct answer value for one
// question, percentage over that question's total responses.
func (r *PostgresVoteRepository) QuestionResponses(ctx context.Context, electionID, questionID int64) ([]domain.QuestionResponse, error) {
	query := `
		SELECT vote_value,
			COUNT(*) AS response_count,
			ROUND(COUNT(*) * 100.0 / NULLIF(
				(SELECT COUNT(*) FROM votes WHERE election_id = $1 AND ballot_question_id = $2), 0), 2) AS percentage
		FROM votes
		WHERE election_id = $1 AND ballot_question_id = $2 AND vote_value IS NOT NULL
		GROUP BY vote_value
		ORDER BY response_count DESC
	`

	rows, err := r.db.QueryContext(ctx, query, electionID, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query question responses: %w", err)
	}
	defer rows.Close()

	var responses []domain.QuestionResponse
	for rows.Next() {
		var qr domain.QuestionResponse
		var percentage sql.NullFloat64

		err := rows.Scan(&qr.ResponseValue, &qr.ResponseCount, &percentage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question response: %w", err)
		}

		if percentage.Valid {
			qr.Percentage = percentage.Float64
		}

		responses = append(responses, qr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question responses: %w", err)
	}

	return responses, nil
}

// CountDistinctVoters counts distinct voter pseudonyms that cast any vote
func (r *PostgresVoteRepository) CountDistinctVoters(ctx context.Context, electionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT voter_id_hash) FROM votes WHERE election_id = $1`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct voters: %w", err)
	}
	return count, nil
}

// CountCandidateVotes counts candidate vote rows in the election
func (r *PostgresVoteRepository) CountCandidateVotes(ctx context.Context, electionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE election_id = $1 AND candidate_id IS NOT NULL`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidate votes: %w", err)
	}
	return count, nil
}

// CountQuestionResponses counts question response rows in the election
func (r *PostgresVoteRepository) CountQuestionResponses(ctx context.Context, electionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE election_id = $1 AND ballot_question_id IS NOT NULL`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count question responses: %w", err)
	}
	return count, nil
}

// VotesByPrecinct counts distinct voters per precinct, busiest first
func (r *PostgresVoteRepository) VotesByPrecinct(ctx context.Context, electionID int64) ([]domain.PrecinctVotes, error) {
	query := `
		SELECT p.name, COUNT(DISTINCT v.voter_id_hash) AS votes_cast
		FROM votes v
		JOIN precincts p ON v.precinct_id = p.id
		WHERE v.election_id = $1
		GROUP BY p.id, p.name
		ORDER BY votes_cast DESC
	`

	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes by precinct: %w", err)
	}
	defer rows.Close()

	var precincts []domain.PrecinctVotes
	for rows.Next() {
		var pv domain.PrecinctVotes
		if err := rows.Scan(&pv.PrecinctName, &pv.VotesCast); err != nil {
			return nil, fmt.Errorf("failed to scan precinct votes: %w", err)
		}
		precincts = append(precincts, pv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating precinct votes: %w", err)
	}

	return precincts, nil
}

// VotingTimeline counts distinct voters per hour of casting
func (r *PostgresVoteRepository) VotingTimeline(ctx context.Context, electionID int64) ([]domain.TimelineBucket, error) {
	query := `
		SELECT to_char(date_trunc('hour', cast_at), 'YYYY-MM-DD HH24:00:00') AS hour_bucket,
			COUNT(DISTINCT voter_id_hash) AS votes_in_hour
		FROM votes
		WHERE election_id = $1
		GROUP BY hour_bucket
		ORDER BY hour_bucket
	`

	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voting timeline: %w", err)
	}
	defer rows.Close()

	var buckets []domain.TimelineBucket
	for rows.Next() {
		var tb domain.TimelineBucket
		if err := rows.Scan(&tb.HourBucket, &tb.VotesInHour); err != nil {
			return nil, fmt.Errorf("failed to scan timeline bucket: %w", err)
		}
		buckets = append(buckets, tb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeline buckets: %w", err)
	}

	return buckets, nil
}

// CountAll returns the total number of vote rows
func (r *PostgresVoteRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
