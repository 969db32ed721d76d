package usecase

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bogi99/evote/internal/domain"
)

func newTestConfiguratorUseCase(
	electionRepo *MockElectionRepository,
	ballotRepo *MockBallotRepository,
	precinctRepo *MockPrecinctRepository,
	auditRepo *MockAuditRepository,
) *ConfiguratorUseCase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewConfiguratorUseCase(electionRepo, ballotRepo, precinctRepo, new(MockVoterRepository), new(MockVoteRepository), auditRepo, log)
}

func TestConfiguratorUseCase_CreateElection(t *testing.T) {
	t.Run("new elections start in draft", func(t *testing.T) {
		electionRepo := new(MockElectionRepository)
		auditRepo := new(MockAuditRepository)

		electionRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Election) bool {
			return e.Status == domain.ElectionStatusDraft
		})).Return(nil)
		auditRepo.On("LogAction", mock.Anything, domain.AuditModuleConfigurator, "election_created", mock.Anything, mock.Anything).Return(nil)

		uc := newTestConfiguratorUseCase(electionRepo, new(MockBallotRepository), new(MockPrecinctRepository), auditRepo)

		election, err := uc.CreateElection(context.Background(), CreateElectionRequest{
			Name:         "City General Election",
			Description:  "Mayoral race and parks bond",
			ElectionDate: "2025-06-15",
			StartTime:    "08:00:00",
			EndTime:      "17:00:00",
		}, "10.0.0.1")

		assert.NoError(t, err)
		assert.Equal(t, domain.ElectionStatusDraft, election.Status)
		electionRepo.AssertExpectations(t)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		uc := newTestConfiguratorUseCase(new(MockElectionRepository), new(MockBallotRepository), new(MockPrecinctRepository), new(MockAuditRepository))

		election, err := uc.CreateElection(context.Background(), CreateElectionRequest{Name: "Incomplete"}, "10.0.0.1")

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Nil(t, election)
	})
}

func TestConfiguratorUseCase_UpdateElectionStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.ElectionStatus
		next    domain.ElectionStatus
		wantErr error
	}{
		{"activate draft", domain.ElectionStatusDraft, domain.ElectionStatusActive, nil},
		{"close active", domain.ElectionStatusActive, domain.ElectionStatusClosed, nil},
		{"cannot skip to finalized", domain.ElectionStatusDraft, domain.ElectionStatusFinalized, domain.ErrInvalidStatusChange},
		{"cannot reopen closed", domain.ElectionStatusClosed, domain.ElectionStatusActive, domain.ErrInvalidStatusChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			electionRepo := new(MockElectionRepository)
			auditRepo := new(MockAuditRepository)

			electionRepo.On("FindByID", mock.Anything, int64(1)).Return(
				&domain.Election{ID: 1, Status: tt.current}, nil)
			electionRepo.On("UpdateStatus", mock.Anything, int64(1), tt.next).Return(nil)
			auditRepo.On("LogAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

			uc := newTestConfiguratorUseCase(electionRepo, new(MockBallotRepository), new(MockPrecinctRepository), auditRepo)

			err := uc.UpdateElectionStatus(context.Background(), 1, tt.next, "10.0.0.1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				electionRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("unknown status value", func(t *testing.T) {
		uc := newTestConfiguratorUseCase(new(MockElectionRepository), new(MockBallotRepository), new(MockPrecinctRepository), new(MockAuditRepository))

		err := uc.UpdateElectionStatus(context.Background(), 1, domain.ElectionStatus("archived"), "10.0.0.1")

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestConfiguratorUseCase_AddBallotQuestion_DefaultsMaxSelections(t *testing.T) {
	electionRepo := new(MockElectionRepository)
	ballotRepo := new(MockBallotRepository)
	auditRepo := new(MockAuditRepository)

	electionRepo.On("FindByID", mock.Anything, int64(1)).Return(
		&domain.Election{ID: 1, Status: domain.ElectionStatusDraft}, nil)
	ballotRepo.On("AddQuestion", mock.Anything, mock.MatchedBy(func(q *domain.BallotQuestion) bool {
		return q.MaxSelections == 1
	})).Return(nil)
	auditRepo.On("LogAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := newTestConfiguratorUseCase(electionRepo, ballotRepo, new(MockPrecinctRepository), auditRepo)

	question, err := uc.AddBallotQuestion(context.Background(), AddQuestionRequest{
		ElectionID:   1,
		QuestionText: "Approve the parks bond?",
		QuestionType: "yes_no",
	}, "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, 1, question.MaxSelections)
	ballotRepo.AssertExpectations(t)
}

func TestConfiguratorUseCase_AddCandidate_UnknownElection(t *testing.T) {
	electionRepo := new(MockElectionRepository)
	electionRepo.On("FindByID", mock.Anything, int64(42)).Return(nil, domain.ErrElectionNotFound)

	uc := newTestConfiguratorUseCase(electionRepo, new(MockBallotRepository), new(MockPrecinctRepository), new(MockAuditRepository))

	candidate, err := uc.AddCandidate(context.Background(), AddCandidateRequest{
		ElectionID: 42,
		Name:       "Alice Reed",
		Position:   "Mayor",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
	assert.Nil(t, candidate)
}

func TestConfiguratorUseCase_SystemStats(t *testing.T) {
	electionRepo := new(MockElectionRepository)
	ballotRepo := new(MockBallotRepository)
	precinctRepo := new(MockPrecinctRepository)
	voterRepo := new(MockVoterRepository)
	voteRepo := new(MockVoteRepository)

	electionRepo.On("CountAll", mock.Anything).Return(int64(4), nil)
	electionRepo.On("CountByStatus", mock.Anything, domain.ElectionStatusActive).Return(int64(1), nil)
	voterRepo.On("CountActive", mock.Anything).Return(int64(250), nil)
	voteRepo.On("CountAll", mock.Anything).Return(int64(480), nil)
	ballotRepo.On("CountActiveCandidates", mock.Anything).Return(int64(12), nil)
	precinctRepo.On("CountActive", mock.Anything).Return(int64(5), nil)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	uc := NewConfiguratorUseCase(electionRepo, ballotRepo, precinctRepo, voterRepo, voteRepo, new(MockAuditRepository), log)

	stats, err := uc.SystemStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalElections)
	assert.Equal(t, int64(1), stats.ActiveElections)
	assert.Equal(t, int64(250), stats.TotalVoters)
	assert.Equal(t, int64(480), stats.TotalVotes)
	assert.Equal(t, int64(12), stats.TotalCandidates)
	assert.Equal(t, int64(5), stats.TotalPrecincts)
}
