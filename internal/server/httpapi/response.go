package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/interestnet/internal/common"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// StatusResponse acknowledges a mutation. Affected is set when the
// operation touched a countable set of rows.
type StatusResponse struct {
	Status   string `json:"status"`
	Affected *int64 `json:"affected,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Oops! failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithSuccess(w http.ResponseWriter, affected *int64) {
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "Success!", Affected: affected})
}

// statusFromError maps service errors onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrMissingCredential), errors.Is(err, common.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrInactiveAccount), errors.Is(err, common.ErrInvalidLogin):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInsufficientPrivilege):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as {"message": "Oops! ..."}. Unexpected errors
// are logged and reported without detail.
func (s *HTTPServer) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFromError(err)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = common.ErrInternal.Error()
	}
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	respondWithJSON(w, code, ErrorResponse{Message: "Oops! " + msg})
}
