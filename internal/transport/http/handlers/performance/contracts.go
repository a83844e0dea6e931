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

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	filter := performance.ContractFilter{
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
		Status:     performance.ContractStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))),
		ActiveOnly: shared.QueryBool(r, "active"),
	}
	contracts, err := h.Service.ListContracts(r.Context(), actorFrom(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, contracts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var payload contractRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	actor := actorFrom(r)
	ownerID := strings.TrimSpace(payload.EmployeeID)
	if ownerID == "" {
		ownerID = actor.ID
	}

	contract, err := h.Service.CreateContract(r.Context(), actor, ownerID, payload.seed())
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, contract, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.Service.GetContract(r.Context(), actorFrom(r), chi.URLParam(r, "contractID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, contract, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditContract(w http.ResponseWriter, r *http.Request) {
	var payload contractRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	h.applyContract(w, r, payload.edit())
}

func (h *Handler) handleValidateContract(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.ValidateContract(r.Context(), actorFrom(r), chi.URLParam(r, "contractID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

// handleContractAction serves the actions whose payload carries no body.
func (h *Handler) handleContractAction(payload performance.ContractPayload) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyContract(w, r, payload)
	}
}

func (h *Handler) handleApproveContract(w http.ResponseWriter, r *http.Request) {
	var payload approveRequest
	if !shared.DecodeOptionalJSON(w, r, &payload) {
		return
	}
	h.applyContract(w, r, performance.ApproveContract{Comment: payload.Comment})
}

func (h *Handler) handleReturnContract(w http.ResponseWriter, r *http.Request) {
	var payload returnRequest
	if !shared.DecodeOptionalJSON(w, r, &payload) {
		return
	}
	h.applyContract(w, r, performance.ReturnContract{Reason: payload.Reason})
}

func (h *Handler) handleActivateContract(w http.ResponseWriter, r *http.Request) {
	var payload activateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	contract, err := h.Service.SetContractActive(r.Context(), actorFrom(r), chi.URLParam(r, "contractID"), *payload.IsActive)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, contract, middleware.GetRequestID(r.Context()))
}

func (h *Handler) applyContract(w http.ResponseWriter, r *http.Request, payload performance.ContractPayload) {
	contract, err := h.Service.ApplyContract(r.Context(), actorFrom(r), chi.URLParam(r, "contractID"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, contract, middleware.GetRequestID(r.Context()))
}
