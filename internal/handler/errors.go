package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/inkpost/internal/domain"
)

// writeServiceError translates a service error into its HTTP response.
// Anything unrecognised is logged under op and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input", Issues: verr.Issues})
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, domain.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "Email already in use")
	default:
		writeInternalError(w, r, op, err)
	}
}

func writeInternalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op, "error", err, "request_id", middleware.GetReqID(r.Context()))
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
