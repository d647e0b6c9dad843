package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseAdminService is the interface that wraps methods for delegated course administration.
// All methods are reserved to the course owner.
type CourseAdminService interface {
	// List retrieves the admin grants of a course.
	List(ctx context.Context, courseSlug string, userID int) ([]models.CourseAdmin, error)
	// Create grants capabilities to several users at once.
	//
	// Returns a validation error for an empty list, the owner, duplicates or unknown users.
	Create(ctx context.Context, courseSlug string, userID int, reqs []models.CreateCourseAdminRequest) ([]models.CourseAdmin, error)
	// Update changes the capabilities of a grant.
	Update(ctx context.Context, courseSlug string, userID, adminID int, req *models.UpdateCourseAdminRequest) (*models.CourseAdmin, error)
	// Delete revokes a grant.
	Delete(ctx context.Context, courseSlug string, userID, adminID int) error
}

// CourseAdminHandler handles course admin HTTP requests
type CourseAdminHandler struct {
	BaseHandler
	service CourseAdminService
}

// NewCourseAdminHandler creates a new course admin handler
func NewCourseAdminHandler(service CourseAdminService, logger *zap.Logger) *CourseAdminHandler {
	return &CourseAdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all course admin handler routes
func (h *CourseAdminHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Get("/courses/{slug}/admins", h.List)
		r.Post("/courses/{slug}/admins", h.Create)
		r.Patch("/courses/{slug}/admins/{id}", h.Update)
		r.Delete("/courses/{slug}/admins/{id}", h.Delete)
	})
}

// List handles GET /courses/{slug}/admins
// @Summary List course admins
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {array} models.CourseAdmin
// @Failure 403 {object} map[string]string "Only the owner can manage course admins"
// @Router /courses/{slug}/admins [get]
func (h *CourseAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	admins, err := h.service.List(r.Context(), chi.URLParam(r, "slug"), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, admins)
}

// Create handles POST /courses/{slug}/admins
// @Summary Grant admin capabilities
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body []models.CreateCourseAdminRequest true "Grants"
// @Success 201 {array} models.CourseAdmin
// @Failure 400 {object} map[string]string "Invalid grants"
// @Failure 403 {object} map[string]string "Only the owner can manage course admins"
// @Router /courses/{slug}/admins [post]
func (h *CourseAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var reqs []models.CreateCourseAdminRequest
	if !h.decodeJSON(w, r, &reqs) {
		return
	}

	admins, err := h.service.Create(r.Context(), chi.URLParam(r, "slug"), userID, reqs)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, admins)
}

// Update handles PATCH /courses/{slug}/admins/{id}
// @Summary Change admin capabilities
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param id path int true "Grant ID"
// @Param request body models.UpdateCourseAdminRequest true "Capabilities"
// @Success 200 {object} models.CourseAdmin
// @Failure 404 {object} map[string]string "Course admin not found"
// @Router /courses/{slug}/admins/{id} [patch]
func (h *CourseAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	adminID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCourseAdminRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.service.Update(r.Context(), chi.URLParam(r, "slug"), userID, adminID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, admin)
}

// Delete handles DELETE /courses/{slug}/admins/{id}
// @Summary Revoke admin capabilities
// @Tags admins
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param id path int true "Grant ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Course admin not found"
// @Router /courses/{slug}/admins/{id} [delete]
func (h *CourseAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	adminID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug"), userID, adminID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
