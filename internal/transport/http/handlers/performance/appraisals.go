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

func (h *Handler) handleListAppraisals(w http.ResponseWriter, r *http.Request) {
	filter := performance.AppraisalFilter{
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
		ContractID: strings.TrimSpace(r.URL.Query().Get("contractId")),
		Status:     performance.AppraisalStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))),
	}
	appraisals, err := h.Service.ListAppraisals(r.Context(), actorFrom(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, appraisals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAppraisal(w http.ResponseWriter, r *http.Request) {
	var payload createAppraisalRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	appraisal, err := h.Service.CreateAppraisal(r.Context(), actorFrom(r), strings.TrimSpace(payload.ContractID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, appraisal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAppraisal(w http.ResponseWriter, r *http.Request) {
	appraisal, err := h.Service.GetAppraisal(r.Context(), actorFrom(r), chi.URLParam(r, "appraisalID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, appraisal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditAppraisal(w http.ResponseWriter, r *http.Request) {
	var payload editAppraisalRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	h.applyAppraisal(w, r, performance.EditAppraisal{
		Achievements:     payload.Achievements,
		EmployeeComments: payload.EmployeeComments,
	})
}

func (h *Handler) handleAppraisalAction(payload performance.AppraisalPayload) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyAppraisal(w, r, payload)
	}
}

func (h *Handler) handleReview(action performance.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reviewRequest
		if !shared.DecodeJSON(w, r, &payload) {
			return
		}
		decision := performance.Decision(payload.Decision)
		if action == performance.ActionCTOReview {
			h.applyAppraisal(w, r, performance.CTOReview{Decision: decision, Comment: payload.Comment})
			return
		}
		h.applyAppraisal(w, r, performance.PMReview{Decision: decision, Comment: payload.Comment})
	}
}

func (h *Handler) handleCommentAppraisal(w http.ResponseWriter, r *http.Request) {
	var payload commentRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	h.applyAppraisal(w, r, performance.CommentAppraisal{Text: payload.Text})
}

func (h *Handler) handleAppraisalScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.Service.AppraisalScore(r.Context(), actorFrom(r), chi.URLParam(r, "appraisalID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, score, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScorePreview(w http.ResponseWriter, r *http.Request) {
	var payload scorePreviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	api.Success(w, h.Service.ComputeScore(payload.Rows), middleware.GetRequestID(r.Context()))
}

func (h *Handler) applyAppraisal(w http.ResponseWriter, r *http.Request, payload performance.AppraisalPayload) {
	appraisal, err := h.Service.ApplyAppraisal(r.Context(), actorFrom(r), chi.URLParam(r, "appraisalID"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, appraisal, middleware.GetRequestID(r.Context()))
}
