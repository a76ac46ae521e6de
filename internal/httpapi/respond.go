package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/investrack/server/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service-layer sentinels to HTTP statuses. All
// authentication failures collapse into one generic 401 body so the
// response never reveals whether an account exists, is disabled, or the
// password was wrong.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrBadCredentials),
		errors.Is(err, common.ErrPrincipalNotFound),
		errors.Is(err, common.ErrPrincipalDisabled):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrTokenNotFound),
		errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
	case errors.Is(err, common.ErrNoSession),
		errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, common.ErrorInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
