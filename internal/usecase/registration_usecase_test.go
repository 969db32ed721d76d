package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bogi99/evote/internal/domain"
)

func newTestRegistrationUseCase(
	voterRepo *MockVoterRepository,
	precinctRepo *MockPrecinctRepository,
	auditRepo *MockAuditRepository,
) *RegistrationUseCase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	uc := NewRegistrationUseCase(voterRepo, precinctRepo, auditRepo, log)
	uc.now = func() time.Time { return testClock }
	return uc
}

func validRegisterRequest() RegisterVoterRequest {
	return RegisterVoterRequest{
		FirstName:   "Jordan",
		LastName:    "Pike",
		Email:       "jordan.pike@example.com",
		PrecinctID:  3,
		DateOfBirth: "1990-04-02",
	}
}

func TestRegistrationUseCase_RegisterVoter_Success(t *testing.T) {
	voterRepo := new(MockVoterRepository)
	auditRepo := new(MockAuditRepository)

	voterRepo.On("EmailExists", mock.Anything, "jordan.pike@example.com").Return(false, nil)
	voterRepo.On("VoterIDExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	var created *domain.Voter
	voterRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Voter")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Voter)
		}).
		Return(nil)
	auditRepo.On("LogAction", mock.Anything, domain.AuditModuleRegistration, "voter_registered", mock.Anything, mock.Anything).Return(nil)

	uc := newTestRegistrationUseCase(voterRepo, new(MockPrecinctRepository), auditRepo)

	response, err := uc.RegisterVoter(context.Background(), validRegisterRequest(), "10.0.0.1")

	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Regexp(t, regexp.MustCompile(`^V2025\d{6}$`), response.VoterID)
	assert.Equal(t, response.VoterID, created.VoterID)
	assert.Equal(t, domain.VoterStatusActive, created.Status)
	assert.False(t, created.HasVoted)
}

func TestRegistrationUseCase_RegisterVoter_RetriesOnIDCollision(t *testing.T) {
	voterRepo := new(MockVoterRepository)
	auditRepo := new(MockAuditRepository)

	voterRepo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	voterRepo.On("VoterIDExists", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()
	voterRepo.On("VoterIDExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	voterRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("LogAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := newTestRegistrationUseCase(voterRepo, new(MockPrecinctRepository), auditRepo)

	response, err := uc.RegisterVoter(context.Background(), validRegisterRequest(), "10.0.0.1")

	assert.NoError(t, err)
	assert.NotEmpty(t, response.VoterID)
	voterRepo.AssertNumberOfCalls(t, "VoterIDExists", 2)
}

func TestRegistrationUseCase_RegisterVoter_DuplicateEmail(t *testing.T) {
	voterRepo := new(MockVoterRepository)

	voterRepo.On("EmailExists", mock.Anything, "jordan.pike@example.com").Return(true, nil)

	uc := newTestRegistrationUseCase(voterRepo, new(MockPrecinctRepository), new(MockAuditRepository))

	response, err := uc.RegisterVoter(context.Background(), validRegisterRequest(), "10.0.0.1")

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
	assert.Nil(t, response)
	voterRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationUseCase_RegisterVoter_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *RegisterVoterRequest)
		wantField string
	}{
		{"missing first name", func(r *RegisterVoterRequest) { r.FirstName = "" }, "first_name"},
		{"missing last name", func(r *RegisterVoterRequest) { r.LastName = "" }, "last_name"},
		{"missing email", func(r *RegisterVoterRequest) { r.Email = "" }, "email"},
		{"missing date of birth", func(r *RegisterVoterRequest) { r.DateOfBirth = "" }, "date_of_birth"},
		{"missing precinct", func(r *RegisterVoterRequest) { r.PrecinctID = 0 }, "precinct_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestRegistrationUseCase(new(MockVoterRepository), new(MockPrecinctRepository), new(MockAuditRepository))

			req := validRegisterRequest()
			tt.mutate(&req)

			response, err := uc.RegisterVoter(context.Background(), req, "10.0.0.1")

			var validationErr *domain.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Nil(t, response)
		})
	}
}

func TestRegistrationUseCase_ListPrecincts(t *testing.T) {
	precinctRepo := new(MockPrecinctRepository)
	precinctRepo.On("ListActive", mock.Anything).Return([]domain.Precinct{
		{ID: 1, Name: "Central Community Hall"},
		{ID: 2, Name: "Northside School Gym"},
	}, nil)

	uc := newTestRegistrationUseCase(new(MockVoterRepository), precinctRepo, new(MockAuditRepository))

	precincts, err := uc.ListPrecincts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, precincts, 2)
}
