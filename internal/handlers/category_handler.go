package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryService is the interface that wraps methods for the category tree
type CategoryService interface {
	// UsedCategories retrieves categories that have at least one course, ordered by name.
	UsedCategories(ctx context.Context) ([]models.Category, error)
	// RootCategories retrieves categories without a parent.
	RootCategories(ctx context.Context) ([]models.Category, error)
	// GetBySlug retrieves a category by its slug.
	GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error)
	// Subcategories retrieves direct children of a category.
	Subcategories(ctx context.Context, categorySlug string) ([]models.Category, error)
	// Tree retrieves a category and all of its descendants in pre-order.
	Tree(ctx context.Context, categorySlug string) ([]models.Category, error)
	// Create adds a category. The slug is derived from the name when empty.
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	// Update renames or moves a category.
	//
	// Returns a validation error when the category would end up under itself or a descendant.
	Update(ctx context.Context, categorySlug string, req *models.UpdateCategoryRequest) (*models.Category, error)
	// Delete removes a category together with its subtree.
	Delete(ctx context.Context, categorySlug string) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	BaseHandler
	service CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all category handler routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListUsed)
		r.Get("/roots", h.ListRoots)
		r.Get("/{slug}", h.Get)
		r.Get("/{slug}/subcategories", h.ListSubcategories)
		r.Get("/{slug}/tree", h.GetTree)

		r.Group(func(r chi.Router) {
			r.Use(mw.Admin)
			r.Post("/", h.Create)
			r.Patch("/{slug}", h.Update)
			r.Delete("/{slug}", h.Delete)
		})
	})
}

// ListUsed handles GET /categories
// @Summary List used categories
// @Description Categories that contain at least one course
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandler) ListUsed(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.UsedCategories(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// ListRoots handles GET /categories/roots
// @Summary List root categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories/roots [get]
func (h *CategoryHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.RootCategories(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{slug}
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{slug} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, category)
}

// ListSubcategories handles GET /categories/{slug}/subcategories
// @Summary List direct subcategories
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {array} models.Category
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{slug}/subcategories [get]
func (h *CategoryHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Subcategories(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// GetTree handles GET /categories/{slug}/tree
// @Summary Get a category subtree
// @Description The category followed by all of its descendants in pre-order
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {array} models.Category
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Cycle detected in the category tree"
// @Router /categories/{slug}/tree [get]
func (h *CategoryHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Tree(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// Create handles POST /categories
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Administrators only"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /categories/{slug}
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Param request body models.UpdateCategoryRequest true "Changes"
// @Success 200 {object} models.Category
// @Failure 400 {object} map[string]string "Invalid parent"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{slug} [patch]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCategoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Update(r.Context(), chi.URLParam(r, "slug"), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{slug}
// @Summary Delete a category and its subtree
// @Tags categories
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{slug} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
