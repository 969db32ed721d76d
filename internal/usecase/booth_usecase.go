package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// CastVoteRequest represents a ballot submission
type CastVoteRequest struct {
	VoterID    string                  `json:"voter_id"`
	ElectionID int64                   `json:"election_id"`
	Selections domain.BallotSelections `json:"votes"`
	BoothID    string                  `json:"booth_id"`
	IPAddress  string                  `json:"-"`
}

// BoothUseCase handles voter verification, ballot retrieval and vote
// casting
type BoothUseCase struct {
	voterRepo    ports.VoterRepository
	electionRepo ports.ElectionRepository
	ballotRepo   ports.BallotRepository
	voteRepo     ports.VoteRepository
	auditRepo    ports.AuditRepository
	log          *logrus.Logger
	now          func() time.Time
}

// NewBoothUseCase creates a new voting booth use case
func NewBoothUseCase(
	voterRepo ports.VoterRepository,
	electionRepo ports.ElectionRepository,
	ballotRepo ports.BallotRepository,
	voteRepo ports.VoteRepository,
	auditRepo ports.AuditRepository,
	log *logrus.Logger,
) *BoothUseCase {
	return &BoothUseCase{
		voterRepo:    voterRepo,
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		voteRepo:     voteRepo,
		auditRepo:    auditRepo,
		log:          log,
		now:          time.Now,
	}
}

// VerifyVoter checks a voter's eligibility. Not-found is distinct from
// ineligible; every outcome is audited for fraud-pattern detection.
func (uc *BoothUseCase) VerifyVoter(ctx context.Context, voterID, ipAddress string) (*domain.Eligibility, error) {
	voter, err := uc.voterRepo.FindByVoterID(ctx, voterID)
	if err != nil {
		if errors.Is(err, domain.ErrVoterNotFound) {
			uc.audit(ctx, "voter_verification_failed", map[string]interface{}{
				"voter_id": voterID,
				"reason":   "not_found",
			}, ipAddress)
		}
		return nil, err
	}

	eligibility := &domain.Eligibility{Voter: voter}
	if voter.HasVoted {
		eligibility.CanVote = false
		eligibility.Reason = "You have already voted in this election"
		uc.audit(ctx, "voter_verification_failed", map[string]interface{}{
			"voter_id": voterID,
			"reason":   "already_voted",
		}, ipAddress)
	} else {
		eligibility.CanVote = true
		eligibility.Reason = "Eligible to vote"
	}

	uc.audit(ctx, "voter_verification", map[string]interface{}{
		"voter_id":    voterID,
		"can_vote":    eligibility.CanVote,
		"precinct_id": voter.PrecinctID,
	}, ipAddress)

	return eligibility, nil
}

// ActiveElections returns elections currently open for voting. The window
// is time-dependent, so this is re-evaluated on every call.
func (uc *BoothUseCase) ActiveElections(ctx context.Context) ([]domain.Election, error) {
	elections, err := uc.electionRepo.ListActiveAt(ctx, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list active elections: %w", err)
	}
	return elections, nil
}

// GetBallot returns the ballot for an election that is open for voting
// right now. The status/date/window check is independent of
// ActiveElections so that cast-time callers re-verify rather than trust a
// page-load snapshot.
func (uc *BoothUseCase) GetBallot(ctx context.Context, electionID int64) (*domain.Ballot, error) {
	election, err := uc.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if !election.IsVotableAt(uc.now()) {
		return nil, domain.ErrElectionUnavailable
	}

	candidates, err := uc.ballotRepo.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	questions, err := uc.ballotRepo.ListQuestions(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballot questions: %w", err)
	}

	byPosition := make(map[string][]domain.Candidate)
	var positions []string
	for _, c := range candidates {
		if _, ok := byPosition[c.Position]; !ok {
			positions = append(positions, c.Position)
		}
		byPosition[c.Position] = append(byPosition[c.Position], c)
	}

	return &domain.Ballot{
		Election:             *election,
		CandidatesByPosition: byPosition,
		Positions:            positions,
		Questions:            questions,
	}, nil
}

// CastVote validates and atomically records a ballot submission, then
// returns a receipt. All-or-nothing: any validation or storage failure
// leaves the voter and votes tables untouched.
func (uc *BoothUseCase) CastVote(ctx context.Context, req CastVoteRequest) (*domain.CastReceipt, error) {
	boothID := req.BoothID
	if boothID == "" {
		boothID = "booth-" + uuid.NewString()[:8]
	}

	eligibility, err := uc.VerifyVoter(ctx, req.VoterID, req.IPAddress)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanVote {
		return nil, domain.NewEligibilityError(eligibility.Reason)
	}

	// Second, independent window check. The window may have closed between
	// ballot render and submission.
	ballot, err := uc.GetBallot(ctx, req.ElectionID)
	if err != nil {
		uc.auditCastFailure(ctx, req, boothID, err)
		return nil, err
	}

	cast, err := uc.buildBallotCast(req, ballot, eligibility.Voter, boothID)
	if err != nil {
		uc.auditCastFailure(ctx, req, boothID, err)
		return nil, err
	}

	votesInserted, err := uc.voteRepo.CastBallot(ctx, *cast)
	if err != nil {
		uc.auditCastFailure(ctx, req, boothID, err)
		return nil, err
	}

	uc.audit(ctx, "vote_cast_success", map[string]interface{}{
		"voter_id_hash": cast.VoterIDHash,
		"election_id":   req.ElectionID,
		"votes_count":   votesInserted,
		"booth_id":      boothID,
	}, req.IPAddress)

	return &domain.CastReceipt{
		Success:     true,
		Message:     "Vote cast successfully",
		VotesCount:  votesInserted,
		ReceiptHash: cast.VoterIDHash[:8],
	}, nil
}

// buildBallotCast validates the selections against the ballot and prepares
// the transaction input, including the voter pseudonym and per-vote
// hashes.
func (uc *BoothUseCase) buildBallotCast(req CastVoteRequest, ballot *domain.Ballot, voter *domain.Voter, boothID string) (*ports.BallotCast, error) {
	validCandidates := make(map[int64]string)
	for position, candidates := range ballot.CandidatesByPosition {
		for _, c := range candidates {
			validCandidates[c.ID] = position
		}
	}

	validQuestions := make(map[int64]domain.BallotQuestion)
	for _, q := range ballot.Questions {
		validQuestions[q.ID] = q
	}

	voterIDHash := sha256Hex(req.VoterID + strconv.FormatInt(req.ElectionID, 10) + uc.now().Format("2006-01-02"))

	cast := &ports.BallotCast{
		ElectionID:  req.ElectionID,
		VoterID:     req.VoterID,
		VoterIDHash: voterIDHash,
		PrecinctID:  voter.PrecinctID,
		BoothID:     boothID,
		IPAddress:   req.IPAddress,
	}

	for position, candidateID := range req.Selections.Candidates {
		if candidateID == 0 {
			continue
		}
		validPosition, ok := validCandidates[candidateID]
		if !ok || validPosition != position {
			return nil, domain.NewBallotValidationError("invalid candidate selection")
		}
		cast.CandidateVotes = append(cast.CandidateVotes, ports.CandidateVote{
			Position:    position,
			CandidateID: candidateID,
			VoteHash:    uc.voteHash(voterIDHash, strconv.FormatInt(candidateID, 10), position),
		})
	}

	for questionID, answer := range req.Selections.Questions {
		if answer == "" {
			continue
		}
		question, ok := validQuestions[questionID]
		if !ok {
			return nil, domain.NewBallotValidationError("invalid question selection")
		}
		normalized := strings.ToLower(answer)
		if !question.AllowsAnswer(normalized) {
			return nil, domain.NewBallotValidationError(
				fmt.Sprintf("answer %q not allowed for question type %s", answer, question.QuestionType))
		}
		cast.QuestionVotes = append(cast.QuestionVotes, ports.QuestionVote{
			QuestionID: questionID,
			Answer:     normalized,
			VoteHash:   uc.voteHash(voterIDHash, normalized, fmt.Sprintf("question_%d", questionID)),
		})
	}

	return cast, nil
}

// voteHash builds the per-vote verification token. It embeds a
// high-resolution timestamp, so it is unique per row but not reproducible;
// treat it as an opaque audit token.
func (uc *BoothUseCase) voteHash(voterIDHash, choice, category string) string {
	return sha256Hex(voterIDHash + choice + category + strconv.FormatInt(uc.now().UnixNano(), 10))
}

func sha256Hex(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func (uc *BoothUseCase) auditCastFailure(ctx context.Context, req CastVoteRequest, boothID string, cause error) {
	uc.audit(ctx, "vote_cast_failed", map[string]interface{}{
		"voter_id":    req.VoterID,
		"election_id": req.ElectionID,
		"error":       cause.Error(),
		"booth_id":    boothID,
	}, req.IPAddress)
}

// audit writes a voting booth audit entry, best-effort; a failed audit
// write never changes the outcome of the operation it records.
func (uc *BoothUseCase) audit(ctx context.Context, action string, details map[string]interface{}, ip string) {
	if err := uc.auditRepo.LogAction(ctx, domain.AuditModuleVotingBooth, action, details, ip); err != nil {
		uc.log.WithError(err).WithField("action", action).Warn("failed to write audit entry")
	}
}
