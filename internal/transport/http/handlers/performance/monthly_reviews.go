package performancehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/performance"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

func (h *Handler) handleListMonthlyReviews(w http.ResponseWriter, r *http.Request) {
	filter := performance.MonthlyReviewFilter{
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
		Status:     performance.MonthlyReviewStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))),
	}
	reviews, err := h.Service.ListMonthlyReviews(r.Context(), actorFrom(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, reviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateMonthlyReview(w http.ResponseWriter, r *http.Request) {
	var payload monthlyReviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	actor := actorFrom(r)
	ownerID := strings.TrimSpace(payload.EmployeeID)
	if ownerID == "" {
		ownerID = actor.ID
	}

	last, today, tasks := payload.fields()
	review, err := h.Service.CreateMonthlyReview(r.Context(), actor, ownerID, performance.MonthlyReviewSeed{
		LastReviewDate: last,
		TodayDate:      today,
		Tasks:          tasks,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, review, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetMonthlyReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.Service.GetMonthlyReview(r.Context(), actorFrom(r), chi.URLParam(r, "reviewID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, review, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditMonthlyReview(w http.ResponseWriter, r *http.Request) {
	var payload monthlyReviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	last, today, tasks := payload.fields()
	h.applyMonthlyReview(w, r, performance.EditMonthlyReview{LastReviewDate: last, TodayDate: today, Tasks: tasks})
}

func (h *Handler) handleMonthlyReviewAction(payload performance.MonthlyReviewPayload) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyMonthlyReview(w, r, payload)
	}
}

func (h *Handler) applyMonthlyReview(w http.ResponseWriter, r *http.Request, payload performance.MonthlyReviewPayload) {
	review, err := h.Service.ApplyMonthlyReview(r.Context(), actorFrom(r), chi.URLParam(r, "reviewID"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, review, middleware.GetRequestID(r.Context()))
}
