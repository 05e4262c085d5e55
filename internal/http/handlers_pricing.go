package http

import (
	"errors"
	"log/slog"
	"net/http"

	"gyeongbi/internal/route"
)

func (s *Server) handleFuelPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.prices.Current(r.Context()))
}

type routeSearchRequest struct {
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
}

func (s *Server) handleRouteSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req routeSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q := route.Query{
		Departure:   sanitizeInput(req.Departure),
		Destination: sanitizeInput(req.Destination),
	}
	cacheKey := q.Departure + "\x00" + q.Destination
	if cached, ok := s.routeCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.routes.Search(r.Context(), q)
	switch {
	case errors.Is(err, route.ErrEmptyEndpoints):
		writeError(w, http.StatusBadRequest, "departure and destination are required")
		return
	case errors.Is(err, route.ErrNoRouteFound):
		writeError(w, http.StatusNotFound, "no route found")
		return
	case errors.Is(err, route.ErrNoCredentials):
		writeError(w, http.StatusServiceUnavailable, "route provider not configured")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Route search failed", "error", err, "departure", q.Departure, "destination", q.Destination)
		writeError(w, http.StatusBadGateway, "route search failed")
		return
	}
	// Mock candidates are randomized per search; caching them would
	// pin one roll.
	if !result.Mock {
		s.routeCache.Set(cacheKey, result)
	}
	writeJSON(w, http.StatusOK, result)
}
