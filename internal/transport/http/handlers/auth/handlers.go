package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/auth"
	"pms/internal/domain/directory"
	"pms/internal/domain/performance"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Sessions  *auth.Service
	Directory *directory.Service
	// SessionLimit guards POST /session; nil disables it.
	SessionLimit func(http.Handler) http.Handler
}

func NewHandler(sessions *auth.Service, dir *directory.Service) *Handler {
	return &Handler{Sessions: sessions, Directory: dir}
}

type sessionRequest struct {
	UserID string `json:"userId" validate:"required,max=100"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	session := r
	if h.SessionLimit != nil {
		session = r.With(h.SessionLimit)
	}
	session.Post("/session", h.handleStartSession)

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleListUsers)
		r.Get("/me", h.handleMe)
	})
}

// handleStartSession issues a token for the asserted directory user.
// There are no credentials to check.
func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var payload sessionRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	session, err := h.Sessions.StartSession(r.Context(), strings.TrimSpace(payload.UserID))
	if errors.Is(err, directory.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Error("start session failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "session_failed", "failed to start session", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, session, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filter := directory.Filter{
		Role:       performance.Role(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("role")))),
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
	}
	if filter.Role != "" && !filter.Role.Valid() {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "role", Reason: "must be one of EMPLOYEE PM CTO ADMIN"}})
		return
	}
	users, err := h.Directory.List(r.Context(), filter)
	if err != nil {
		slog.Error("list users failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	user, err := h.Directory.Get(r.Context(), actor.ID)
	if errors.Is(err, directory.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Error("load current user failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "user_failed", "failed to load user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}
