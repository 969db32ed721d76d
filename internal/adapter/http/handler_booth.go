package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bogi99/evote/internal/usecase"
)

// BoothHandler handles HTTP requests for the voting booth
type BoothHandler struct {
	boothUseCase *usecase.BoothUseCase
}

// NewBoothHandler creates a new booth handler
func NewBoothHandler(boothUseCase *usecase.BoothUseCase) *BoothHandler {
	return &BoothHandler{
		boothUseCase: boothUseCase,
	}
}

// RegisterRoutes registers voting booth routes. Verify and cast carry the
// throttle middleware; ballot reads do not.
func (h *BoothHandler) RegisterRoutes(router *mux.Router, throttle mux.MiddlewareFunc) {
	router.Handle("/api/v1/voters/{id}/verify", throttle(http.HandlerFunc(h.VerifyVoter))).Methods("POST")
	router.HandleFunc("/api/v1/elections/active", h.ActiveElections).Methods("GET")
	router.HandleFunc("/api/v1/elections/{id}/ballot", h.GetBallot).Methods("GET")
	router.Handle("/api/v1/elections/{id}/cast", throttle(http.HandlerFunc(h.CastVote))).Methods("POST")
}

// VerifyVoter handles voter eligibility checks
func (h *BoothHandler) VerifyVoter(w http.ResponseWriter, r *http.Request) {
	voterID := mux.Vars(r)["id"]
	if voterID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "voter id is required")
		return
	}

	eligibility, err := h.boothUseCase.VerifyVoter(r.Context(), voterID, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, eligibility.Reason, eligibility)
}

// ActiveElections handles listing elections open for voting right now
func (h *BoothHandler) ActiveElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.boothUseCase.ActiveElections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", elections)
}

// GetBallot handles retrieving the ballot for an open election
func (h *BoothHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid election id")
		return
	}

	ballot, err := h.boothUseCase.GetBallot(r.Context(), electionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", ballot)
}

// CastVote handles ballot submission. The election comes from the path,
// the voter and selections from the body.
func (h *BoothHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid election id")
		return
	}

	var req usecase.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VoterID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	req.ElectionID = electionID
	req.IPAddress = clientIP(r)

	receipt, err := h.boothUseCase.CastVote(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, receipt.Message, receipt)
}
