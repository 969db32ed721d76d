package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// MockVoterRepository is a mock implementation of ports.VoterRepository
type MockVoterRepository struct {
	mock.Mock
}

func (m *MockVoterRepository) Create(ctx context.Context, voter *domain.Voter) error {
	args := m.Called(ctx, voter)
	return args.Error(0)
}

func (m *MockVoterRepository) FindByVoterID(ctx context.Context, voterID string) (*domain.Voter, error) {
	args := m.Called(ctx, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voter), args.Error(1)
}

func (m *MockVoterRepository) VoterIDExists(ctx context.Context, voterID string) (bool, error) {
	args := m.Called(ctx, voterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoterRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoterRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPrecinctRepository is a mock implementation of ports.PrecinctRepository
type MockPrecinctRepository struct {
	mock.Mock
}

func (m *MockPrecinctRepository) Create(ctx context.Context, precinct *domain.Precinct) error {
	args := m.Called(ctx, precinct)
	return args.Error(0)
}

func (m *MockPrecinctRepository) ListActive(ctx context.Context) ([]domain.Precinct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Precinct), args.Error(1)
}

func (m *MockPrecinctRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockElectionRepository is a mock implementation of ports.ElectionRepository
type MockElectionRepository struct {
	mock.Mock
}

func (m *MockElectionRepository) Create(ctx context.Context, election *domain.Election) error {
	args := m.Called(ctx, election)
	return args.Error(0)
}

func (m *MockElectionRepository) FindByID(ctx context.Context, id int64) (*domain.Election, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Election), args.Error(1)
}

func (m *MockElectionRepository) List(ctx context.Context) ([]domain.ElectionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ElectionSummary), args.Error(1)
}

func (m *MockElectionRepository) ListActiveAt(ctx context.Context, now time.Time) ([]domain.Election, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Election), args.Error(1)
}

func (m *MockElectionRepository) UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockElectionRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockElectionRepository) CountByStatus(ctx context.Context, status domain.ElectionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockBallotRepository is a mock implementation of ports.BallotRepository
type MockBallotRepository struct {
	mock.Mock
}

func (m *MockBallotRepository) AddCandidate(ctx context.Context, candidate *domain.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *MockBallotRepository) AddQuestion(ctx context.Context, question *domain.BallotQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockBallotRepository) ListCandidates(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockBallotRepository) ListQuestions(ctx context.Context, electionID int64) ([]domain.BallotQuestion, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BallotQuestion), args.Error(1)
}

func (m *MockBallotRepository) CountActiveCandidates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockVoteRepository is a mock implementation of ports.VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) CastBallot(ctx context.Context, cast ports.BallotCast) (int, error) {
	args := m.Called(ctx, cast)
	return args.Int(0), args.Error(1)
}

func (m *MockVoteRepository) CandidateTallies(ctx context.Context, electionID int64) ([]domain.CandidateResult, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateResult), args.Error(1)
}

func (m *MockVoteRepository) QuestionResponses(ctx context.Context, electionID, questionID int64) ([]domain.QuestionResponse, error) {
	args := m.Called(ctx, electionID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionResponse), args.Error(1)
}

func (m *MockVoteRepository) CountDistinctVoters(ctx context.Context, electionID int64) (int64, error) {
	args := m.Called(ctx, electionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteRepository) CountCandidateVotes(ctx context.Context, electionID int64) (int64, error) {
	args := m.Called(ctx, electionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteRepository) CountQuestionResponses(ctx context.Context, electionID int64) (int64, error) {
	args := m.Called(ctx, electionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteRepository) VotesByPrecinct(ctx context.Context, electionID int64) ([]domain.PrecinctVotes, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrecinctVotes), args.Error(1)
}

func (m *MockVoteRepository) VotingTimeline(ctx context.Context, electionID int64) ([]domain.TimelineBucket, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineBucket), args.Error(1)
}

func (m *MockVoteRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRepository is a mock implementation of ports.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) LogAction(ctx context.Context, module, action string, details map[string]interface{}, ipAddress string) error {
	args := m.Called(ctx, module, action, details, ipAddress)
	return args.Error(0)
}

// MockResultsCacheRepository is a mock implementation of
// ports.ResultsCacheRepository
type MockResultsCacheRepository struct {
	mock.Mock
}

func (m *MockResultsCacheRepository) Get(ctx context.Context, electionID int64) (*domain.ElectionResults, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ElectionResults), args.Error(1)
}

func (m *MockResultsCacheRepository) Upsert(ctx context.Context, electionID int64, results *domain.ElectionResults) error {
	args := m.Called(ctx, electionID, results)
	return args.Error(0)
}

// MockAdminRepository is a mock implementation of ports.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}
