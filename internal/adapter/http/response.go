package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bogi99/evote/internal/domain"
)

// Envelope is the response shape for most JSON endpoints
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// resultsEnvelope is the response shape of the results API. It carries a
// timestamp instead of a status string and is kept separate from Envelope
// for compatibility with result consumers.
type resultsEnvelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type resultsErrorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Envelope{Status: "success", Message: message, Data: data})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Status: "error", Message: message})
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var eligibilityErr *domain.EligibilityError
	var ballotErr *domain.BallotValidationError
	var formatErr *domain.ExportFormatError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &ballotErr),
		errors.As(err, &formatErr):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &eligibilityErr):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrVoterNotFound),
		errors.Is(err, domain.ErrElectionNotFound),
		errors.Is(err, domain.ErrPrecinctNotFound),
		errors.Is(err, domain.ErrCandidateNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrElectionUnavailable),
		errors.Is(err, domain.ErrResultsNotAvailable),
		errors.Is(err, domain.ErrInvalidStatusChange),
		errors.Is(err, domain.ErrEmailAlreadyUsed):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeResultsSuccess(w http.ResponseWriter, data interface{}, at time.Time) {
	writeJSON(w, http.StatusOK, resultsEnvelope{
		Success:   true,
		Data:      data,
		Timestamp: at.Format("2006-01-02 15:04:05"),
	})
}

func writeResultsError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, resultsErrorEnvelope{Error: message})
}

// clientIP extracts the caller address, preferring X-Forwarded-For when a
// proxy set it
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
