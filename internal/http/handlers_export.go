package http

import (
	"log/slog"
	"net/http"
	"time"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/core"
)

type exportRequest struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Formats   []string `json:"formats"`
	Filename  string   `json:"filename,omitempty"`
	Author    string   `json:"author,omitempty"`
}

// handleExportJob enqueues an export job; rendering happens in the
// worker process.
func (s *Server) handleExportJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if s.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "export queue not configured")
		return
	}

	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := core.ValidateDate(req.StartDate); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid startDate: expected YYYY-MM-DD")
		return
	}
	if err := core.ValidateDate(req.EndDate); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid endDate: expected YYYY-MM-DD")
		return
	}
	if req.EndDate < req.StartDate {
		writeError(w, http.StatusUnprocessableEntity, "endDate must not precede startDate")
		return
	}
	if len(req.Formats) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "at least one format is required")
		return
	}

	author := sanitizeInput(req.Author)
	if author == "" {
		author = s.author
	}
	createdDate := time.Now().Format("2006-01-02")

	msg := amqp.NewExportJobMessage(author, createdDate, req.StartDate, req.EndDate, req.Formats, sanitizeInput(req.Filename))
	if err := s.jobs.PublishExportJob(r.Context(), msg); err != nil {
		slog.ErrorContext(r.Context(), "Export job publish failed", "error", err, "formats", req.Formats)
		writeError(w, http.StatusBadGateway, "failed to enqueue export job")
		return
	}
	writeJSON(w, http.StatusAccepted, msg)
}
