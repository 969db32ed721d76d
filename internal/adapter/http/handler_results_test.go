package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	stmock "github.com/stretchr/testify/mock"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/usecase"
)

// mockElectionRepo is a mock implementation of ports.ElectionRepository
type mockElectionRepo struct {
	stmock.Mock
}

func (m *mockElectionRepo) Create(ctx context.Context, election *domain.Election) error {
	args := m.Called(ctx, election)
	return args.Error(0)
}

func (m *mockElectionRepo) FindByID(ctx context.Context, id int64) (*domain.Election, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Election), args.Error(1)
}

func (m *mockElectionRepo) List(ctx context.Context) ([]domain.ElectionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ElectionSummary), args.Error(1)
}

func (m *mockElectionRepo) ListActiveAt(ctx context.Context, now time.Time) ([]domain.Election, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Election), args.Error(1)
}

func (m *mockElectionRepo) UpdateStatus(ctx context.Context, id int64, status domain.ElectionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockElectionRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockElectionRepo) CountByStatus(ctx context.Context, status domain.ElectionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func newResultsTestRouter(handler *ResultsHandler) *mux.Router {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestResultsHandler_GetResults_RequestValidation(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing election_id",
			method:         http.MethodGet,
			target:         "/api/v1/results",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "election_id parameter is required",
		},
		{
			name:           "non-numeric election_id",
			method:         http.MethodGet,
			target:         "/api/v1/results?election_id=abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "election_id must be a positive integer",
		},
		{
			name:           "negative election_id",
			method:         http.MethodGet,
			target:         "/api/v1/results?election_id=-3",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "election_id must be a positive integer",
		},
		{
			name:           "post is not allowed",
			method:         http.MethodPost,
			target:         "/api/v1/results?election_id=1",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "method not allowed",
		},
		{
			name:           "delete is not allowed",
			method:         http.MethodDelete,
			target:         "/api/v1/results",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "method not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewResultsHandler(nil, nil)
			router := newResultsTestRouter(handler)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}

func TestResultsHandler_GetResults_ListElections(t *testing.T) {
	electionRepo := new(mockElectionRepo)
	electionRepo.On("List", stmock.Anything).Return([]domain.ElectionSummary{
		{
			Election:       domain.Election{ID: 1, Name: "City General Election", Status: domain.ElectionStatusActive},
			CandidateCount: 3,
			VotesCast:      42,
		},
	}, nil)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	configuratorUseCase := usecase.NewConfiguratorUseCase(electionRepo, nil, nil, nil, nil, nil, log)

	fixedNow := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	handler := NewResultsHandler(nil, configuratorUseCase)
	handler.now = func() time.Time { return fixedNow }
	router := newResultsTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results?list=elections", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success   bool                     `json:"success"`
		Data      []domain.ElectionSummary `json:"data"`
		Timestamp string                   `json:"timestamp"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "City General Election", body.Data[0].Name)
	assert.Equal(t, "2025-06-15 10:30:00", body.Timestamp)
}

func TestResultsHandler_GetResults_NotFound(t *testing.T) {
	electionRepo := new(mockElectionRepo)
	electionRepo.On("FindByID", stmock.Anything, int64(99)).Return(nil, domain.ErrElectionNotFound)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	tabulatorUseCase := usecase.NewTabulatorUseCase(electionRepo, nil, nil, nil, nil, nil, log)

	handler := NewResultsHandler(tabulatorUseCase, nil)
	router := newResultsTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results?election_id=99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "election not found", body["error"])
}
