package ports

import (
	"context"
	"time"

	"github.com/bogi99/evote/internal/domain"
)

// VoterRepository persists voter records
type VoterRepository interface {
	Create(ctx context.Context, voter *domain.Voter) error
	// FindByVoterID returns the active voter with precinct name joined in,
	// or domain.ErrVoterNotFound.
	FindByVoterID(ctx context.Context, voterID string) (*domain.Voter, error)
	VoterIDExists(ctx context.Context, voterID string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// PrecinctRepository persists precincts
type PrecinctRepository interface {
	Create(ctx context.Context, precinct *domain.Precinct) error
	ListActive(ctx context.Context) ([]domain.Precinct, error)
	CountActive(ctx context.Context) (int64, error)
}

// ElectionRepository persists elections and their lifecycle
type ElectionRepository interface {
	Create(ctx context.Context, election *domain.Election) error
	FindByID(ctx context.Context, id int64) (*domain.Election, error)
	// List returns all elections newest first, decorated with candidate and
	// distinct-voter counts.
	List(ctx context.Context) ([]domain.ElectionSummary, error)
	// ListActiveAt returns elections votable at the given moment, by name.
	ListActiveAt(ctx context.Context, now time.Time) ([]domain.Election, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ElectionStatus) (int64, error)
}

// BallotRepository persists candidates and ballot questions
type BallotRepository interface {
	AddCandidate(ctx context.Context, candidate *domain.Candidate) error
	AddQuestion(ctx context.Context, question *domain.BallotQuestion) error
	// ListCandidates returns active candidates for the election ordered by
	// position, ballot_order, name.
	ListCandidates(ctx context.Context, electionID int64) ([]domain.Candidate, error)
	// ListQuestions returns active questions ordered by ballot_order, id.
	ListQuestions(ctx context.Context, electionID int64) ([]domain.BallotQuestion, error)
	CountActiveCandidates(ctx context.Context) (int64, error)
}

// CandidateVote is one validated candidate selection ready for insertion.
type CandidateVote struct {
	Position    string
	CandidateID int64
	VoteHash    string
}

// QuestionVote is one validated question answer ready for insertion.
type QuestionVote struct {
	QuestionID int64
	Answer     string
	VoteHash   string
}

// BallotCast is the full unit of work for one cast-vote transaction.
type BallotCast struct {
	ElectionID     int64
	VoterID        string // raw public id, used only to flip has_voted
	VoterIDHash    string // stored with votes instead of the raw id
	PrecinctID     int64
	BoothID        string
	IPAddress      string
	CandidateVotes []CandidateVote
	QuestionVotes  []QuestionVote
}

// VoteRepository persists votes and answers tabulation queries
type VoteRepository interface {
	// CastBallot inserts every vote row, writes a per-vote audit record,
	// and flips the voter's has_voted flag, all inside one transaction.
	// The voter row is re-checked under lock; a voter who already voted
	// gets an EligibilityError and nothing is written.
	CastBallot(ctx context.Context, cast BallotCast) (int, error)
	// CandidateTallies returns per-candidate counts with percentages over
	// the election-wide candidate-vote denominator, ordered by position,
	// vote count descending, ballot_order.
	CandidateTallies(ctx context.Context, electionID int64) ([]domain.CandidateResult, error)
	// QuestionResponses returns tallies per distinct answer value for one
	// question, ordered by count descending.
	QuestionResponses(ctx context.Context, electionID, questionID int64) ([]domain.QuestionResponse, error)
	CountDistinctVoters(ctx context.Context, electionID int64) (int64, error)
	CountCandidateVotes(ctx context.Context, electionID int64) (int64, error)
	CountQuestionResponses(ctx context.Context, electionID int64) (int64, error)
	VotesByPrecinct(ctx context.Context, electionID int64) ([]domain.PrecinctVotes, error)
	VotingTimeline(ctx context.Context, electionID int64) ([]domain.TimelineBucket, error)
	CountAll(ctx context.Context) (int64, error)
}

// AuditRepository appends system audit log entries. Append-only; entries
// are never mutated or deleted.
type AuditRepository interface {
	LogAction(ctx context.Context, module, action string, details map[string]interface{}, ipAddress string) error
}

// ResultsCacheRepository stores calculated results for closed elections
type ResultsCacheRepository interface {
	// Get returns the cached snapshot or nil when none exists.
	Get(ctx context.Context, electionID int64) (*domain.ElectionResults, error)
	// Upsert writes through, replacing any previous snapshot.
	Upsert(ctx context.Context, electionID int64, results *domain.ElectionResults) error
}

// AdminRepository persists operator accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.AdminUser) error
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}
