package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// RegisterVoterRequest represents the request to register a voter
type RegisterVoterRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	PrecinctID  int64   `json:"precinct_id"`
	DateOfBirth string  `json:"date_of_birth"`
}

// RegisterVoterResponse represents the response after registering a voter
type RegisterVoterResponse struct {
	Success bool   `json:"success"`
	VoterID string `json:"voter_id"`
	Message string `json:"message"`
}

// RegistrationUseCase handles voter registration
type RegistrationUseCase struct {
	voterRepo    ports.VoterRepository
	precinctRepo ports.PrecinctRepository
	auditRepo    ports.AuditRepository
	log          *logrus.Logger
	now          func() time.Time
}

// NewRegistrationUseCase creates a new registration use case
func NewRegistrationUseCase(
	voterRepo ports.VoterRepository,
	precinctRepo ports.PrecinctRepository,
	auditRepo ports.AuditRepository,
	log *logrus.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		voterRepo:    voterRepo,
		precinctRepo: precinctRepo,
		auditRepo:    auditRepo,
		log:          log,
		now:          time.Now,
	}
}

// RegisterVoter registers a new voter with a generated unique voter id
func (uc *RegistrationUseCase) RegisterVoter(ctx context.Context, req RegisterVoterRequest, ipAddress string) (*RegisterVoterResponse, error) {
	if err := uc.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	exists, err := uc.voterRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyUsed
	}

	voterID, err := uc.generateVoterID(ctx)
	if err != nil {
		return nil, err
	}

	voter := &domain.Voter{
		VoterID:     voterID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		PrecinctID:  req.PrecinctID,
		DateOfBirth: req.DateOfBirth,
		Status:      domain.VoterStatusActive,
	}

	if err := uc.voterRepo.Create(ctx, voter); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	uc.audit(ctx, "voter_registered", map[string]interface{}{
		"voter_id":    voterID,
		"email":       req.Email,
		"precinct_id": req.PrecinctID,
	}, ipAddress)

	return &RegisterVoterResponse{
		Success: true,
		VoterID: voterID,
		Message: "Voter registered successfully",
	}, nil
}

// ListPrecincts returns active precincts for the registration form
func (uc *RegistrationUseCase) ListPrecincts(ctx context.Context) ([]domain.Precinct, error) {
	precincts, err := uc.precinctRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list precincts: %w", err)
	}
	return precincts, nil
}

func (uc *RegistrationUseCase) validateRegisterRequest(req RegisterVoterRequest) error {
	if req.FirstName == "" {
		return domain.NewValidationError("first_name", "required field missing")
	}
	if req.LastName == "" {
		return domain.NewValidationError("last_name", "required field missing")
	}
	if req.Email == "" {
		return domain.NewValidationError("email", "required field missing")
	}
	if req.DateOfBirth == "" {
		return domain.NewValidationError("date_of_birth", "required field missing")
	}
	if req.PrecinctID == 0 {
		return domain.NewValidationError("precinct_id", "required field missing")
	}
	return nil
}

// generateVoterID builds V<year><6 zero-padded digits> and regenerates on
// collision until an unused id is found.
func (uc *RegistrationUseCase) generateVoterID(ctx context.Context) (string, error) {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(999999))
		if err != nil {
			return "", fmt.Errorf("failed to generate voter id: %w", err)
		}

		voterID := fmt.Sprintf("V%s%06d", uc.now().Format("2006"), n.Int64()+1)

		exists, err := uc.voterRepo.VoterIDExists(ctx, voterID)
		if err != nil {
			return "", fmt.Errorf("failed to check voter id: %w", err)
		}
		if !exists {
			return voterID, nil
		}
	}
}

// audit writes a registration audit entry, best-effort.
func (uc *RegistrationUseCase) audit(ctx context.Context, action string, details map[string]interface{}, ip string) {
	if err := uc.auditRepo.LogAction(ctx, domain.AuditModuleRegistration, action, details, ip); err != nil {
		uc.log.WithError(err).WithField("action", action).Warn("failed to write audit entry")
	}
}
