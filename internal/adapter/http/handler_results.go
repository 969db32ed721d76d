package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/usecase"
)

// ResultsHandler serves the public results API. Unlike the rest of the
// surface it answers with the {success,data,timestamp} / {error} envelope
// that downstream result consumers expect.
type ResultsHandler struct {
	tabulatorUseCase    *usecase.TabulatorUseCase
	configuratorUseCase *usecase.ConfiguratorUseCase
	now                 func() time.Time
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(tabulatorUseCase *usecase.TabulatorUseCase, configuratorUseCase *usecase.ConfiguratorUseCase) *ResultsHandler {
	return &ResultsHandler{
		tabulatorUseCase:    tabulatorUseCase,
		configuratorUseCase: configuratorUseCase,
		now:                 time.Now,
	}
}

// RegisterRoutes registers the results endpoint for every method so that
// non-GET requests get a 405 in the results envelope instead of the router
// default.
func (h *ResultsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/results", h.GetResults)
}

// RegisterAdminRoutes registers tabulation routes that require admin auth
func (h *ResultsHandler) RegisterAdminRoutes(router *mux.Router, requireAuth mux.MiddlewareFunc) {
	router.Handle("/api/v1/elections/{id}/recalculate", requireAuth(http.HandlerFunc(h.Recalculate))).Methods("POST")
}

// GetResults dispatches on query parameters:
//
//	?list=elections                     election summaries
//	?election_id=N                      tabulated results (type auto)
//	?election_id=N&type=realtime|final  explicit result type
//	?election_id=N&winners=true         leading candidate per position
//	?election_id=N&format=csv|xml|json  export download
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeResultsError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()

	if query.Get("list") == "elections" {
		elections, err := h.configuratorUseCase.ListElections(r.Context())
		if err != nil {
			h.writeResultsFailure(w, err)
			return
		}
		writeResultsSuccess(w, elections, h.now())
		return
	}

	electionIDParam := query.Get("election_id")
	if electionIDParam == "" {
		writeResultsError(w, http.StatusBadRequest, "election_id parameter is required")
		return
	}

	electionID, err := strconv.ParseInt(electionIDParam, 10, 64)
	if err != nil || electionID <= 0 {
		writeResultsError(w, http.StatusBadRequest, "election_id must be a positive integer")
		return
	}

	if format := query.Get("format"); format != "" {
		h.export(w, r, electionID, format)
		return
	}

	if query.Get("winners") == "true" {
		winners, err := h.tabulatorUseCase.Winners(r.Context(), electionID)
		if err != nil {
			h.writeResultsFailure(w, err)
			return
		}
		writeResultsSuccess(w, winners, h.now())
		return
	}

	results, err := h.tabulatorUseCase.ResultsByType(r.Context(), electionID, query.Get("type"), clientIP(r))
	if err != nil {
		h.writeResultsFailure(w, err)
		return
	}

	writeResultsSuccess(w, results, h.now())
}

// Recalculate recomputes results and writes through the cache
func (h *ResultsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid election id")
		return
	}

	results, err := h.tabulatorUseCase.Recalculate(r.Context(), electionID, clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Results recalculated", results)
}

// export streams serialized results as a file download
func (h *ResultsHandler) export(w http.ResponseWriter, r *http.Request, electionID int64, format string) {
	payload, err := h.tabulatorUseCase.ExportResults(r.Context(), electionID, format, clientIP(r))
	if err != nil {
		h.writeResultsFailure(w, err)
		return
	}

	contentType := "application/json"
	switch format {
	case usecase.ExportFormatCSV:
		contentType = "text/csv"
	case usecase.ExportFormatXML:
		contentType = "application/xml"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=election_%d_results.%s", electionID, format))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// writeResultsFailure maps errors onto the results error envelope
func (h *ResultsHandler) writeResultsFailure(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var formatErr *domain.ExportFormatError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		writeResultsError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrElectionNotFound):
		writeResultsError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrResultsNotAvailable):
		writeResultsError(w, http.StatusConflict, err.Error())
	default:
		writeResultsError(w, http.StatusInternalServerError, "internal server error")
	}
}
