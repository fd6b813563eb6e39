package report

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	reports registry.Registry
}

func NewHandler(reports registry.Registry) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response, err := registry.Describe(h.reports, r)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to describe reports")
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode reports")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "report")

	view, ok := h.reports.Get(name)
	if !ok {
		zerolog.Ctx(r.Context()).Warn().
			Str("report", name).
			Msg("unknown report requested")
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	view.ServeHTTP(w, r)
}
