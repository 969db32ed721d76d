package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/usecase"
)

// ConfiguratorHandler handles HTTP requests for election setup. All
// mutating routes sit behind the admin auth middleware.
type ConfiguratorHandler struct {
	configuratorUseCase *usecase.ConfiguratorUseCase
}

// NewConfiguratorHandler creates a new configurator handler
func NewConfiguratorHandler(configuratorUseCase *usecase.ConfiguratorUseCase) *ConfiguratorHandler {
	return &ConfiguratorHandler{
		configuratorUseCase: configuratorUseCase,
	}
}

// RegisterRoutes registers configurator routes. Reads are public;
// mutations and the stats dashboard require an admin token.
func (h *ConfiguratorHandler) RegisterRoutes(router *mux.Router, requireAuth mux.MiddlewareFunc) {
	router.Handle("/api/v1/elections", requireAuth(http.HandlerFunc(h.CreateElection))).Methods("POST")
	router.HandleFunc("/api/v1/elections", h.ListElections).Methods("GET")
	router.HandleFunc("/api/v1/elections/{id}", h.GetElection).Methods("GET")
	router.Handle("/api/v1/elections/{id}/status", requireAuth(http.HandlerFunc(h.UpdateElectionStatus))).Methods("PUT")
	router.Handle("/api/v1/candidates", requireAuth(http.HandlerFunc(h.AddCandidate))).Methods("POST")
	router.Handle("/api/v1/questions", requireAuth(http.HandlerFunc(h.AddBallotQuestion))).Methods("POST")
	router.Handle("/api/v1/precincts", requireAuth(http.HandlerFunc(h.CreatePrecinct))).Methods("POST")
	router.Handle("/api/v1/admin/stats", requireAuth(http.HandlerFunc(h.SystemStats))).Methods("GET")
}

// CreateElection handles election creation
func (h *ConfiguratorHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	election, err := h.configuratorUseCase.CreateElection(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Election created successfully", election)
}

// ListElections handles listing all elections with counts
func (h *ConfiguratorHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.configuratorUseCase.ListElections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", elections)
}

// GetElection handles retrieving an election with candidates and questions
func (h *ConfiguratorHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid election id")
		return
	}

	details, err := h.configuratorUseCase.GetElectionWithDetails(r.Context(), electionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", details)
}

// UpdateElectionStatus handles lifecycle transitions
func (h *ConfiguratorHandler) UpdateElectionStatus(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid election id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.configuratorUseCase.UpdateElectionStatus(r.Context(), electionID, domain.ElectionStatus(req.Status), clientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Election status updated", map[string]interface{}{
		"election_id": electionID,
		"status":      req.Status,
	})
}

// AddCandidate handles adding a candidate to an election ballot
func (h *ConfiguratorHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req usecase.AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidate, err := h.configuratorUseCase.AddCandidate(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Candidate added successfully", candidate)
}

// AddBallotQuestion handles adding a ballot question to an election
func (h *ConfiguratorHandler) AddBallotQuestion(w http.ResponseWriter, r *http.Request) {
	var req usecase.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.configuratorUseCase.AddBallotQuestion(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Ballot question added successfully", question)
}

// CreatePrecinct handles precinct creation
func (h *ConfiguratorHandler) CreatePrecinct(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreatePrecinctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	precinct, err := h.configuratorUseCase.CreatePrecinct(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Precinct created successfully", precinct)
}

// SystemStats handles the admin dashboard counters
func (h *ConfiguratorHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.configuratorUseCase.SystemStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", stats)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
