package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course catalogue and management
type CourseService interface {
	// List retrieves a page of courses.
	//
	// "categorySlug" restricts the list to courses in that category or any of its descendants.
	// "search" matches course titles and overviews.
	// "page" and "count" fall back to defaults when not positive.
	List(ctx context.Context, categorySlug, search string, page, count int) ([]models.CourseListItem, error)
	// ListManaged retrieves courses the user owns or administers.
	ListManaged(ctx context.Context, userID int) ([]models.CourseListItem, error)
	// GetCourse retrieves course details.
	//
	// "userID" is 0 for anonymous requests, in which case participation and edit flags are false.
	GetCourse(ctx context.Context, courseSlug string, userID int) (*models.CourseDetailResponse, error)
	// Create adds a course owned by req.OwnerID.
	Create(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	// Update changes course settings. Requires the edit_course capability.
	Update(ctx context.Context, courseSlug string, userID int, req *models.UpdateCourseRequest) (*models.Course, error)
	// Delete removes a course with its modules and content. Only the owner may delete.
	Delete(ctx context.Context, courseSlug string, userID int) error
}

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Get("/courses", h.List)
	r.With(mw.Optional).Get("/courses/{slug}", h.Get)

	r.With(mw.Teacher).Post("/courses", h.Create)
	r.With(mw.Teacher).Get("/manage/courses", h.ListManaged)
	r.With(mw.Auth).Patch("/courses/{slug}", h.Update)
	r.With(mw.Auth).Delete("/courses/{slug}", h.Delete)
}

// List handles GET /courses
// @Summary List courses
// @Description Paginated course catalogue, optionally filtered by category subtree and search text
// @Tags courses
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param count query int false "Page size" default(20)
// @Success 200 {array} models.CourseListItem
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, ok := h.queryInt(w, query.Get("page"), "page")
	if !ok {
		return
	}
	count, ok := h.queryInt(w, query.Get("count"), "count")
	if !ok {
		return
	}

	courses, err := h.service.List(r.Context(), query.Get("category"), query.Get("search"), page, count)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// queryInt parses an optional non-negative integer query parameter, 0 meaning absent
func (h *CourseHandler) queryInt(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}

// Get handles GET /courses/{slug}
// @Summary Get course details
// @Description Anonymous requests are allowed. Participation and edit flags are set for authenticated users.
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} models.CourseDetailResponse
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{slug} [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "slug"), optionalUserID(r))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// ListManaged handles GET /manage/courses
// @Summary List managed courses
// @Description Courses the current user owns or administers
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseListItem
// @Failure 403 {object} map[string]string "Teachers only"
// @Router /manage/courses [get]
func (h *CourseHandler) ListManaged(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	courses, err := h.service.ListManaged(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// Create handles POST /courses
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Teachers only"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Router /courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateCourseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.OwnerID = userID

	course, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// Update handles PATCH /courses/{slug}
// @Summary Update course settings
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body models.UpdateCourseRequest true "Changes"
// @Success 200 {object} models.Course
// @Failure 403 {object} map[string]string "Not allowed to edit the settings"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{slug} [patch]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	course, err := h.service.Update(r.Context(), chi.URLParam(r, "slug"), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// Delete handles DELETE /courses/{slug}
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Only the owner can delete a course"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{slug} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug"), userID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
