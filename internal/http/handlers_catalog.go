package http

import (
	"net/http"

	"gyeongbi/internal/core"
)

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Brands []string `json:"brands"`
	}{Brands: core.Brands()})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	brand := sanitizeInput(r.URL.Query().Get("brand"))
	if brand == "" {
		writeError(w, http.StatusBadRequest, "brand parameter is required")
		return
	}
	models := core.Models(brand)
	if len(models) == 0 {
		writeError(w, http.StatusNotFound, "unknown brand")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Brand  string   `json:"brand"`
		Models []string `json:"models"`
	}{Brand: brand, Models: models})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	brand := sanitizeInput(r.URL.Query().Get("brand"))
	model := sanitizeInput(r.URL.Query().Get("model"))
	if brand == "" || model == "" {
		writeError(w, http.StatusBadRequest, "brand and model parameters are required")
		return
	}
	variants := core.Variants(brand, model)
	if len(variants) == 0 {
		writeError(w, http.StatusNotFound, "unknown brand or model")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Brand     string                `json:"brand"`
		Model     string                `json:"model"`
		Variants  []core.CatalogVariant `json:"variants"`
		FuelTypes []core.FuelType       `json:"fuelTypes"`
	}{Brand: brand, Model: model, Variants: variants, FuelTypes: core.FuelTypes(brand, model)})
}
