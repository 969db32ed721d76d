package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// TabulatorUseCase aggregates cast votes into result sets
type TabulatorUseCase struct {
	electionRepo ports.ElectionRepository
	ballotRepo   ports.BallotRepository
	voterRepo    ports.VoterRepository
	voteRepo     ports.VoteRepository
	cacheRepo    ports.ResultsCacheRepository
	auditRepo    ports.AuditRepository
	log          *logrus.Logger
	now          func() time.Time
}

// NewTabulatorUseCase creates a new tabulator use case
func NewTabulatorUseCase(
	electionRepo ports.ElectionRepository,
	ballotRepo ports.BallotRepository,
	voterRepo ports.VoterRepository,
	voteRepo ports.VoteRepository,
	cacheRepo ports.ResultsCacheRepository,
	auditRepo ports.AuditRepository,
	log *logrus.Logger,
) *TabulatorUseCase {
	return &TabulatorUseCase{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		voterRepo:    voterRepo,
		voteRepo:     voteRepo,
		cacheRepo:    cacheRepo,
		auditRepo:    auditRepo,
		log:          log,
		now:          time.Now,
	}
}

// CalculateResults computes the full result set for an election from the
// live vote rows. Reads are point-in-time snapshots; concurrent writes may
// yield slightly stale aggregates, which is why calculated_at is attached.
func (uc *TabulatorUseCase) CalculateResults(ctx context.Context, electionID int64, ip string) (*domain.ElectionResults, error) {
	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.CandidateResults(ctx, electionID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.BallotQuestionResults(ctx, electionID)
	if err != nil {
		return nil, err
	}

	statistics, err := uc.ElectionStatistics(ctx, electionID)
	if err != nil {
		return nil, err
	}

	results := &domain.ElectionResults{
		ElectionID:   electionID,
		ElectionInfo: *election,
		Candidates:   candidates,
		Questions:    questions,
		Statistics:   *statistics,
		CalculatedAt: uc.now(),
	}

	uc.audit(ctx, "results_calculated", map[string]interface{}{
		"election_id": electionID,
		"total_votes": statistics.TotalVotesCast,
	}, ip)

	return results, nil
}

// CandidateResults returns per-candidate tallies grouped by position. The
// rows arrive ordered by (position, vote count desc, ballot_order); the
// grouping step preserves that order.
func (uc *TabulatorUseCase) CandidateResults(ctx context.Context, electionID int64) ([]domain.PositionResults, error) {
	tallies, err := uc.voteRepo.CandidateTallies(ctx, electionID)
	if err != nil {
		return nil, err
	}

	var grouped []domain.PositionResults
	index := make(map[string]int)
	for _, t := range tallies {
		i, ok := index[t.Position]
		if !ok {
			grouped = append(grouped, domain.PositionResults{Position: t.Position})
			i = len(grouped) - 1
			index[t.Position] = i
		}
		grouped[i].Candidates = append(grouped[i].Candidates, t)
	}

	return grouped, nil
}

// BallotQuestionResults returns response tallies per active question
func (uc *TabulatorUseCase) BallotQuestionResults(ctx context.Context, electionID int64) ([]domain.QuestionResults, error) {
	questions, err := uc.ballotRepo.ListQuestions(ctx, electionID)
	if err != nil {
		return nil, err
	}

	var results []domain.QuestionResults
	for _, q := range questions {
		responses, err := uc.voteRepo.QuestionResponses(ctx, electionID, q.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.QuestionResults{
			Question:  q,
			Responses: responses,
		})
	}

	return results, nil
}

// ElectionStatistics computes turnout and distribution figures. The
// registered-voter count is the global active-voter total, not scoped to
// the election.
func (uc *TabulatorUseCase) ElectionStatistics(ctx context.Context, electionID int64) (*domain.ElectionStatistics, error) {
	stats := &domain.ElectionStatistics{}
	var err error

	if stats.TotalRegisteredVoters, err = uc.voterRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVotesCast, err = uc.voteRepo.CountDistinctVoters(ctx, electionID); err != nil {
		return nil, err
	}

	if stats.TotalRegisteredVoters > 0 {
		stats.TurnoutPercentage = round2(float64(stats.TotalVotesCast) / float64(stats.TotalRegisteredVoters) * 100)
	}

	if stats.TotalCandidateVotes, err = uc.voteRepo.CountCandidateVotes(ctx, electionID); err != nil {
		return nil, err
	}
	if stats.TotalQuestionResponses, err = uc.voteRepo.CountQuestionResponses(ctx, electionID); err != nil {
		return nil, err
	}
	if stats.VotesByPrecinct, err = uc.voteRepo.VotesByPrecinct(ctx, electionID); err != nil {
		return nil, err
	}
	if stats.VotingTimeline, err = uc.voteRepo.VotingTimeline(ctx, electionID); err != nil {
		return nil, err
	}

	return stats, nil
}

// RealTimeResults returns live results; only allowed while the election is
// active
func (uc *TabulatorUseCase) RealTimeResults(ctx context.Context, electionID int64, ip string) (*domain.ElectionResults, error) {
	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if election.Status != domain.ElectionStatusActive {
		return nil, domain.ErrResultsNotAvailable
	}

	return uc.CalculateResults(ctx, electionID, ip)
}

// FinalResults returns cached results for a closed or finalized election,
// computing and caching them on first request. The cache is never
// invalidated automatically; Recalculate writes through.
func (uc *TabulatorUseCase) FinalResults(ctx context.Context, electionID int64, ip string) (*domain.ElectionResults, error) {
	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if election.Status != domain.ElectionStatusClosed && election.Status != domain.ElectionStatusFinalized {
		return nil, domain.ErrResultsNotAvailable
	}

	cached, err := uc.cacheRepo.Get(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	results, err := uc.CalculateResults(ctx, electionID, ip)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.Upsert(ctx, electionID, results); err != nil {
		return nil, err
	}

	return results, nil
}

// Recalculate recomputes results and writes through the cache, regardless
// of any existing snapshot
func (uc *TabulatorUseCase) Recalculate(ctx context.Context, electionID int64, ip string) (*domain.ElectionResults, error) {
	results, err := uc.CalculateResults(ctx, electionID, ip)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.Upsert(ctx, electionID, results); err != nil {
		return nil, err
	}

	return results, nil
}

// ResultsByType resolves the requested result type. "auto" picks realtime
// for active elections and final for closed or finalized ones.
func (uc *TabulatorUseCase) ResultsByType(ctx context.Context, electionID int64, resultType, ip string) (*domain.ElectionResults, error) {
	switch resultType {
	case "realtime":
		return uc.RealTimeResults(ctx, electionID, ip)
	case "final":
		return uc.FinalResults(ctx, electionID, ip)
	case "auto", "":
		election, err := uc.electionRepo.FindByID(ctx, electionID)
		if err != nil {
			return nil, err
		}
		switch election.Status {
		case domain.ElectionStatusActive:
			return uc.RealTimeResults(ctx, electionID, ip)
		case domain.ElectionStatusClosed, domain.ElectionStatusFinalized:
			return uc.FinalResults(ctx, electionID, ip)
		default:
			return nil, domain.ErrResultsNotAvailable
		}
	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("invalid result type: %s", resultType))
	}
}

// Winners returns the leading candidate per position
func (uc *TabulatorUseCase) Winners(ctx context.Context, electionID int64) (map[string]domain.CandidateResult, error) {
	candidates, err := uc.CandidateResults(ctx, electionID)
	if err != nil {
		return nil, err
	}

	results := domain.ElectionResults{Candidates: candidates}
	return results.WinnersByPosition(), nil
}

func (uc *TabulatorUseCase) audit(ctx context.Context, action string, details map[string]interface{}, ip string) {
	if err := uc.auditRepo.LogAction(ctx, domain.AuditModuleTabulator, action, details, ip); err != nil {
		uc.log.WithError(err).WithField("action", action).Warn("failed to write audit entry")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
