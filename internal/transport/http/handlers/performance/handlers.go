package performancehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/performance"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", h.handleListContracts)
			r.Post("/", h.handleCreateContract)
			r.Get("/{contractID}", h.handleGetContract)
			r.Put("/{contractID}", h.handleEditContract)
			r.Get("/{contractID}/validation", h.handleValidateContract)
			r.Post("/{contractID}/sign", h.handleContractAction(performance.SignContract{}))
			r.Post("/{contractID}/submit", h.handleContractAction(performance.SubmitContract{}))
			r.Post("/{contractID}/reopen", h.handleContractAction(performance.ReopenContract{}))
			r.Post("/{contractID}/approve", h.handleApproveContract)
			r.Post("/{contractID}/return", h.handleReturnContract)
			r.Post("/{contractID}/activate", h.handleActivateContract)
		})

		r.Route("/monthly-reviews", func(r chi.Router) {
			r.Get("/", h.handleListMonthlyReviews)
			r.Post("/", h.handleCreateMonthlyReview)
			r.Get("/{reviewID}", h.handleGetMonthlyReview)
			r.Put("/{reviewID}", h.handleEditMonthlyReview)
			r.Delete("/{reviewID}", h.handleMonthlyReviewAction(performance.DeleteMonthlyReview{}))
			r.Post("/{reviewID}/submit", h.handleMonthlyReviewAction(performance.SubmitMonthlyReview{}))
		})

		r.Route("/appraisals", func(r chi.Router) {
			r.Get("/", h.handleListAppraisals)
			r.Post("/", h.handleCreateAppraisal)
			r.Post("/score-preview", h.handleScorePreview)
			r.Get("/{appraisalID}", h.handleGetAppraisal)
			r.Put("/{appraisalID}", h.handleEditAppraisal)
			r.Delete("/{appraisalID}", h.handleAppraisalAction(performance.DeleteAppraisal{}))
			r.Get("/{appraisalID}/score", h.handleAppraisalScore)
			r.Post("/{appraisalID}/submit", h.handleAppraisalAction(performance.SubmitAppraisal{}))
			r.Post("/{appraisalID}/reopen", h.handleAppraisalAction(performance.ReopenAppraisal{}))
			r.Post("/{appraisalID}/pm-review", h.handleReview(performance.ActionPMReview))
			r.Post("/{appraisalID}/cto-review", h.handleReview(performance.ActionCTOReview))
			r.Post("/{appraisalID}/comments", h.handleCommentAppraisal)
		})

		r.Get("/rating-bands", h.handleRatingBands)
	})
}

func (h *Handler) handleRatingBands(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Bands().Bands(), middleware.GetRequestID(r.Context()))
}

// writeError maps core error kinds onto HTTP statuses. Validation messages
// are shown verbatim; forbidden ones stay generic.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, performance.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", performance.Message(err), requestID)
	case errors.Is(err, performance.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", requestID)
	case errors.Is(err, performance.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", performance.Message(err), requestID)
	case errors.Is(err, performance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", performance.Message(err), requestID)
	default:
		slog.Error("performance request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func actorFrom(r *http.Request) performance.Actor {
	actor, _ := middleware.GetActor(r.Context())
	return actor
}
