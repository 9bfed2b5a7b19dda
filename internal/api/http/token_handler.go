package http

import (
	"encoding/json"
	"net/http"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/service"

	"github.com/gorilla/mux"
)

// TokenAPIHandler is the JSON proxy in front of the Token Issuing Service.
// Callers never see the upstream API key.
type TokenAPIHandler struct {
	tokenSvc service.TokenService
}

// NewTokenAPIHandler creates a new token API handler
func NewTokenAPIHandler(tokenSvc service.TokenService) *TokenAPIHandler {
	return &TokenAPIHandler{tokenSvc: tokenSvc}
}

// IssueToken handles POST /api/v1/meeting-tokens
func (h *TokenAPIHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in domain.FormInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	issued, _, err := h.tokenSvc.IssueAdminToken(r.Context(), in)
	if err != nil {
		kind := domain.KindOf(err)
		status := http.StatusBadGateway
		if kind == domain.ErrorKindClientValidation {
			status = http.StatusBadRequest
		}
		writeError(w, status, domain.UserMessage(err), string(kind))
		return
	}

	writeJSON(w, http.StatusOK, issued)
}

// RegisterTokenAPIRoutes registers the JSON token endpoints
func RegisterTokenAPIRoutes(router *mux.Router, handler *TokenAPIHandler) {
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/meeting-tokens", handler.IssueToken).Methods("POST")
}
