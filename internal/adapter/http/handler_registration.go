package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bogi99/evote/internal/usecase"
)

// RegistrationHandler handles HTTP requests for voter registration
type RegistrationHandler struct {
	registrationUseCase *usecase.RegistrationUseCase
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationUseCase *usecase.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUseCase: registrationUseCase,
	}
}

// RegisterRoutes registers registration routes
func (h *RegistrationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/voters", h.RegisterVoter).Methods("POST")
	router.HandleFunc("/api/v1/precincts", h.ListPrecincts).Methods("GET")
}

// RegisterVoter handles new voter registration
func (h *RegistrationHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.registrationUseCase.RegisterVoter(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, response.Message, response)
}

// ListPrecincts handles listing active precincts
func (h *RegistrationHandler) ListPrecincts(w http.ResponseWriter, r *http.Request) {
	precincts, err := h.registrationUseCase.ListPrecincts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", precincts)
}
