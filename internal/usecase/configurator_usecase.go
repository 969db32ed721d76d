package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// CreateElectionRequest represents the request to create an election
type CreateElectionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ElectionDate string `json:"election_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// AddCandidateRequest represents the request to add a candidate
type AddCandidateRequest struct {
	ElectionID  int64   `json:"election_id"`
	Name        string  `json:"name"`
	Party       *string `json:"party,omitempty"`
	Position    string  `json:"position"`
	Bio         *string `json:"bio,omitempty"`
	BallotOrder int     `json:"ballot_order"`
}

// AddQuestionRequest represents the request to add a ballot question
type AddQuestionRequest struct {
	ElectionID    int64  `json:"election_id"`
	QuestionText  string `json:"question_text"`
	QuestionType  string `json:"question_type"`
	MaxSelections int    `json:"max_selections"`
	BallotOrder   int    `json:"ballot_order"`
}

// CreatePrecinctRequest represents the request to create a precinct
type CreatePrecinctRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// ConfiguratorUseCase handles election setup and lifecycle management
type ConfiguratorUseCase struct {
	electionRepo ports.ElectionRepository
	ballotRepo   ports.BallotRepository
	precinctRepo ports.PrecinctRepository
	voterRepo    ports.VoterRepository
	voteRepo     ports.VoteRepository
	auditRepo    ports.AuditRepository
	log          *logrus.Logger
}

// NewConfiguratorUseCase creates a new configurator use case
func NewConfiguratorUseCase(
	electionRepo ports.ElectionRepository,
	ballotRepo ports.BallotRepository,
	precinctRepo ports.PrecinctRepository,
	voterRepo ports.VoterRepository,
	voteRepo ports.VoteRepository,
	auditRepo ports.AuditRepository,
	log *logrus.Logger,
) *ConfiguratorUseCase {
	return &ConfiguratorUseCase{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		precinctRepo: precinctRepo,
		voterRepo:    voterRepo,
		voteRepo:     voteRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// CreateElection creates a new election in draft status
func (uc *ConfiguratorUseCase) CreateElection(ctx context.Context, req CreateElectionRequest, ip string) (*domain.Election, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "required field missing")
	}
	if req.Description == "" {
		return nil, domain.NewValidationError("description", "required field missing")
	}
	if req.ElectionDate == "" {
		return nil, domain.NewValidationError("election_date", "required field missing")
	}
	if req.StartTime == "" {
		return nil, domain.NewValidationError("start_time", "required field missing")
	}
	if req.EndTime == "" {
		return nil, domain.NewValidationError("end_time", "required field missing")
	}

	election := &domain.Election{
		Name:         req.Name,
		Description:  req.Description,
		ElectionDate: req.ElectionDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       domain.ElectionStatusDraft,
	}

	if err := uc.electionRepo.Create(ctx, election); err != nil {
		return nil, fmt.Errorf("failed to create election: %w", err)
	}

	uc.audit(ctx, "election_created", map[string]interface{}{
		"election_id": election.ID,
		"name":        election.Name,
	}, ip)

	return election, nil
}

// AddCandidate adds a candidate to an election
func (uc *ConfiguratorUseCase) AddCandidate(ctx context.Context, req AddCandidateRequest, ip string) (*domain.Candidate, error) {
	if req.ElectionID == 0 {
		return nil, domain.NewValidationError("election_id", "required field missing")
	}
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "required field missing")
	}
	if req.Position == "" {
		return nil, domain.NewValidationError("position", "required field missing")
	}

	if _, err := uc.electionRepo.FindByID(ctx, req.ElectionID); err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		ElectionID:  req.ElectionID,
		Name:        req.Name,
		Party:       req.Party,
		Position:    req.Position,
		Bio:         req.Bio,
		BallotOrder: req.BallotOrder,
	}

	if err := uc.ballotRepo.AddCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to add candidate: %w", err)
	}

	uc.audit(ctx, "candidate_added", map[string]interface{}{
		"candidate_id": candidate.ID,
		"election_id":  req.ElectionID,
		"name":         req.Name,
		"position":     req.Position,
	}, ip)

	return candidate, nil
}

// AddBallotQuestion adds a ballot question to an election
func (uc *ConfiguratorUseCase) AddBallotQuestion(ctx context.Context, req AddQuestionRequest, ip string) (*domain.BallotQuestion, error) {
	if req.ElectionID == 0 {
		return nil, domain.NewValidationError("election_id", "required field missing")
	}
	if req.QuestionText == "" {
		return nil, domain.NewValidationError("question_text", "required field missing")
	}
	if req.QuestionType == "" {
		return nil, domain.NewValidationError("question_type", "required field missing")
	}

	if _, err := uc.electionRepo.FindByID(ctx, req.ElectionID); err != nil {
		return nil, err
	}

	maxSelections := req.MaxSelections
	if maxSelections == 0 {
		maxSelections = 1
	}

	question := &domain.BallotQuestion{
		ElectionID:    req.ElectionID,
		QuestionText:  req.QuestionText,
		QuestionType:  domain.QuestionType(req.QuestionType),
		MaxSelections: maxSelections,
		BallotOrder:   req.BallotOrder,
	}

	if err := uc.ballotRepo.AddQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to add ballot question: %w", err)
	}

	uc.audit(ctx, "ballot_question_added", map[string]interface{}{
		"question_id":   question.ID,
		"election_id":   req.ElectionID,
		"question_type": req.QuestionType,
	}, ip)

	return question, nil
}

// CreatePrecinct creates a new precinct
func (uc *ConfiguratorUseCase) CreatePrecinct(ctx context.Context, req CreatePrecinctRequest, ip string) (*domain.Precinct, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "required field missing")
	}
	if req.Address == "" {
		return nil, domain.NewValidationError("address", "required field missing")
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1000
	}

	precinct := &domain.Precinct{
		Name:     req.Name,
		Address:  req.Address,
		Capacity: capacity,
	}

	if err := uc.precinctRepo.Create(ctx, precinct); err != nil {
		return nil, fmt.Errorf("failed to create precinct: %w", err)
	}

	uc.audit(ctx, "precinct_created", map[string]interface{}{
		"precinct_id": precinct.ID,
		"name":        precinct.Name,
	}, ip)

	return precinct, nil
}

// UpdateElectionStatus moves an election one step through the lifecycle
// draft -> active -> closed -> finalized. Transitions never go backwards.
func (uc *ConfiguratorUseCase) UpdateElectionStatus(ctx context.Context, electionID int64, status domain.ElectionStatus, ip string) error {
	if !domain.ValidElectionStatus(status) {
		return domain.NewValidationError("status", fmt.Sprintf("invalid status: %s", status))
	}

	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return err
	}

	if !election.CanTransitionTo(status) {
		return domain.ErrInvalidStatusChange
	}

	if err := uc.electionRepo.UpdateStatus(ctx, electionID, status); err != nil {
		return fmt.Errorf("failed to update election status: %w", err)
	}

	uc.audit(ctx, "election_status_changed", map[string]interface{}{
		"election_id": electionID,
		"old_status":  election.Status,
		"new_status":  status,
	}, ip)

	return nil
}

// ListElections returns all elections with ballot counts
func (uc *ConfiguratorUseCase) ListElections(ctx context.Context) ([]domain.ElectionSummary, error) {
	summaries, err := uc.electionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	return summaries, nil
}

// ElectionDetails holds an election with its candidates and questions
type ElectionDetails struct {
	Election   domain.Election         `json:"election"`
	Candidates []domain.Candidate      `json:"candidates"`
	Questions  []domain.BallotQuestion `json:"ballot_questions"`
}

// GetElectionWithDetails returns an election with candidates and questions
func (uc *ConfiguratorUseCase) GetElectionWithDetails(ctx context.Context, electionID int64) (*ElectionDetails, error) {
	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.ballotRepo.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	questions, err := uc.ballotRepo.ListQuestions(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballot questions: %w", err)
	}

	return &ElectionDetails{
		Election:   *election,
		Candidates: candidates,
		Questions:  questions,
	}, nil
}

// SystemStats returns platform-wide counters for the admin dashboard
func (uc *ConfiguratorUseCase) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	stats := &domain.SystemStats{}
	var err error

	if stats.TotalElections, err = uc.electionRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveElections, err = uc.electionRepo.CountByStatus(ctx, domain.ElectionStatusActive); err != nil {
		return nil, err
	}
	if stats.TotalVoters, err = uc.voterRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVotes, err = uc.voteRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCandidates, err = uc.ballotRepo.CountActiveCandidates(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPrecincts, err = uc.precinctRepo.CountActive(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (uc *ConfiguratorUseCase) audit(ctx context.Context, action string, details map[string]interface{}, ip string) {
	if err := uc.auditRepo.LogAction(ctx, domain.AuditModuleConfigurator, action, details, ip); err != nil {
		uc.log.WithError(err).WithField("action", action).Warn("failed to write audit entry")
	}
}
