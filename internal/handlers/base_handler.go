// Package handlers exposes the services over HTTP
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/apperrors"
	authMiddleware "github.com/coursehub/backend/internal/auth/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to its HTTP status.
// Errors of unknown kind are logged and hidden behind a generic message.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrCycleDetected):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
	default:
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondError(w, status, err.Error())
}

// decodeJSON reads the request body into dst and answers 400 on failure
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID parses a numeric URL parameter and answers 400 when it is not one
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// userID returns the authenticated user, answering 401 when there is none
func (h *BaseHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}

// optionalUserID returns the authenticated user or 0 for anonymous requests
func optionalUserID(r *http.Request) int {
	userID, _ := authMiddleware.GetUserID(r.Context())
	return userID
}

// Middlewares are the access guards handlers attach to their routes
type Middlewares struct {
	// Auth requires any authenticated user
	Auth func(http.Handler) http.Handler
	// Optional identifies the user when a token is present
	Optional func(http.Handler) http.Handler
	// Teacher requires the teacher role or higher
	Teacher func(http.Handler) http.Handler
	// Admin requires the administrator role
	Admin func(http.Handler) http.Handler
}
