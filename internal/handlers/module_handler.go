package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ModuleService is the interface that wraps methods for course modules
type ModuleService interface {
	// List retrieves the modules of a course in order.
	//
	// Editors see hidden modules as well. Participants see visible modules only.
	List(ctx context.Context, courseSlug string, userID int) ([]models.Module, error)
	// Create appends a module to the end of the course.
	Create(ctx context.Context, courseSlug string, userID int, req *models.CreateModuleRequest) (*models.Module, error)
	// Update changes module title, description or visibility.
	Update(ctx context.Context, id, userID int, req *models.UpdateModuleRequest) (*models.Module, error)
	// ToggleVisibility flips the visible flag and returns the new value.
	ToggleVisibility(ctx context.Context, id, userID int) (bool, error)
	// Move changes the module position, either one step in a direction or to an absolute position.
	Move(ctx context.Context, id, userID int, req *models.MoveRequest) error
	// Delete removes a module with its content.
	Delete(ctx context.Context, id, userID int) error
}

// ModuleHandler handles module-related HTTP requests
type ModuleHandler struct {
	BaseHandler
	service ModuleService
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(service ModuleService, logger *zap.Logger) *ModuleHandler {
	return &ModuleHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all module handler routes
func (h *ModuleHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Get("/courses/{slug}/modules", h.List)
		r.Post("/courses/{slug}/modules", h.Create)
		r.Patch("/modules/{id}", h.Update)
		r.Delete("/modules/{id}", h.Delete)
		r.Post("/modules/{id}/visibility", h.ToggleVisibility)
		r.Post("/modules/{id}/order", h.Move)
	})
}

// List handles GET /courses/{slug}/modules
// @Summary List course modules
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {array} models.Module
// @Failure 403 {object} map[string]string "Not a participant of this course"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{slug}/modules [get]
func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	modules, err := h.service.List(r.Context(), chi.URLParam(r, "slug"), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, modules)
}

// Create handles POST /courses/{slug}/modules
// @Summary Create a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body models.CreateModuleRequest true "Module"
// @Success 201 {object} models.Module
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not allowed to edit the content"
// @Router /courses/{slug}/modules [post]
func (h *ModuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateModuleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	module, err := h.service.Create(r.Context(), chi.URLParam(r, "slug"), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, module)
}

// Update handles PATCH /modules/{id}
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param request body models.UpdateModuleRequest true "Changes"
// @Success 200 {object} models.Module
// @Failure 403 {object} map[string]string "Not allowed to edit the content"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id} [patch]
func (h *ModuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateModuleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	module, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, module)
}

// ToggleVisibility handles POST /modules/{id}/visibility
// @Summary Toggle module visibility
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} models.VisibilityResponse
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id}/visibility [post]
func (h *ModuleHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	visible, err := h.service.ToggleVisibility(r.Context(), id, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.VisibilityResponse{Visible: visible})
}

// Move handles POST /modules/{id}/order
// @Summary Reorder a module
// @Description Move one step with direction "up" or "down", or to an absolute position.
// @Description An occupied position swaps the two modules.
// @Tags modules
// @Accept json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param request body models.MoveRequest true "Direction or position"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid direction"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id}/order [post]
func (h *ModuleHandler) Move(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Move(r.Context(), id, userID, &req); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /modules/{id}
// @Summary Delete a module
// @Tags modules
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id} [delete]
func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
