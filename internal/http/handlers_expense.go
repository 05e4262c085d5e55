package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gyeongbi/internal/core"
	"gyeongbi/internal/ledger"
)

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, struct {
			Records []core.ExpenseRecord `json:"records"`
		}{Records: s.ledger.Records(r.Context())})
	case http.MethodPost:
		s.confirmDraft(w, r, "")
	case http.MethodDelete:
		s.ledger.DeleteAll(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// handleExpenseByID routes /api/expenses/{id}, /api/expenses/{id}/edit
// and /api/expenses/last-vehicle.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if rest == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if rest == "last-vehicle" {
		s.handleLastVehicle(w, r)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/edit"); ok {
		s.handleEditDraft(w, r, id)
		return
	}

	if strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := s.ledger.Get(r.Context(), rest)
		if errors.Is(err, ledger.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "expense record not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodPut:
		s.confirmDraft(w, r, rest)
	case http.MethodDelete:
		if err := s.ledger.Delete(r.Context(), rest); err != nil {
			writeError(w, http.StatusNotFound, "expense record not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// confirmDraft decodes a draft and confirms it. A non-empty id forces
// an in-place replacement of that record.
func (s *Server) confirmDraft(w http.ResponseWriter, r *http.Request, id string) {
	var d ledger.Draft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if id != "" {
		d.EditingID = id
	}
	d.Memo = sanitizeInput(d.Memo)

	rec, err := s.ledger.Confirm(r.Context(), d)
	switch {
	case errors.Is(err, ledger.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "expense record not found")
		return
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Expense confirm failed", "error", err, "date", d.Date)
		writeError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}

	status := http.StatusCreated
	if id != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, rec)
}

func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	d, err := s.ledger.Edit(r.Context(), id)
	if errors.Is(err, ledger.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "expense record not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleLastVehicle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	v := s.ledger.LastVehicle(r.Context())
	if v == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// isValidationError reports whether err comes from draft validation
// rather than infrastructure.
func isValidationError(err error) bool {
	for _, target := range []error{
		ledger.ErrNothingToRecord,
		core.ErrInvalidFuelType,
		core.ErrInvalidDate,
		core.ErrInvalidDistance,
		core.ErrInvalidDuration,
		core.ErrInvalidEfficiency,
		core.ErrNegativeAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
