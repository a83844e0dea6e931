package reportshandler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/reports"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	summary, err := h.Service.Summary(r.Context(), actor, strings.TrimSpace(r.URL.Query().Get("department")))
	if err != nil {
		slog.Error("performance summary failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
