package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/middleware"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
	Code    *string   `json:"error_code,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// respondWithDomainError maps service-layer sentinel errors onto HTTP status
// codes. Unrecognized errors are logged with the request ID and reported as a
// generic 500 so internals never leak to clients.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrPasswordTooWeak):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrInvitationNotFound),
		errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrTimeEntryNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrSlugAlreadyExists),
		errors.Is(err, domain.ErrMemberAlreadyExists),
		errors.Is(err, domain.ErrInvitationPending),
		errors.Is(err, domain.ErrInvitationClosed),
		errors.Is(err, domain.ErrAgentInactive):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvitationExpired):
		respondWithError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrUpstreamFailure):
		respondWithError(w, http.StatusBadGateway, "Upstream agent failure")
	default:
		slog.ErrorContext(r.Context(), "Unhandled service error",
			"error", err,
			"path", r.URL.Path,
			"requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID returns the authenticated user injected by the auth
// middleware. The second return is false on unauthenticated requests.
func currentUserID(r *http.Request) (uuid.UUID, bool) {
	return middleware.UserID(r.Context())
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// requestScope builds the tenancy scope for the request. Routes mounted under
// /organizations/{orgID} resolve to an organization scope; everything else is
// the caller's personal surface.
func requestScope(r *http.Request) (service.Scope, error) {
	userID, ok := currentUserID(r)
	if !ok {
		return service.Scope{}, domain.ErrUnauthorized
	}

	scope := service.Scope{UserID: userID}
	if raw := chi.URLParam(r, "orgID"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			return service.Scope{}, domain.ErrOrganizationNotFound
		}
		scope.OrganizationID = &orgID
	}
	return scope, nil
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
