package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadMemory = 8 << 20

// ContentService is the interface that wraps methods for module content
type ContentService interface {
	// List retrieves the content of a module in order, items attached.
	List(ctx context.Context, moduleID, userID int) ([]models.ContentResponse, error)
	// Get retrieves a single content envelope with its item.
	//
	// Returns a not found error when the user may not see the content.
	Get(ctx context.Context, id, userID int) (*models.ContentResponse, error)
	// ListAvailable retrieves content of one kind the user owns, for reuse.
	ListAvailable(ctx context.Context, userID int, rawKind string) ([]models.ContentResponse, error)
	// Create adds an item of the given kind to the end of a module.
	//
	// "upload" carries the file of image and file items and is nil otherwise.
	Create(ctx context.Context, moduleID, userID int, rawKind string, req *models.CreateContentRequest, upload *services.Upload) (*models.ContentResponse, error)
	// Update changes the item fields or the envelope visibility.
	Update(ctx context.Context, id, userID int, req *models.UpdateContentRequest) (*models.ContentResponse, error)
	// ToggleVisibility flips the visible flag and returns the new value.
	ToggleVisibility(ctx context.Context, id, userID int) (bool, error)
	// Move changes the content position inside its module.
	Move(ctx context.Context, id, userID int, req *models.MoveRequest) error
	// Delete removes the content with its item and stored file.
	Delete(ctx context.Context, id, userID int) error
	// OpenDownload opens the stored file of an image or file item.
	//
	// Returns the file, the name to offer the client and an error if any.
	OpenDownload(ctx context.Context, id, userID int) (io.ReadCloser, string, error)
}

// ContentHandler handles content-related HTTP requests
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(service ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Get("/modules/{id}/contents", h.List)
		r.Post("/modules/{id}/contents/{kind}", h.Create)
		r.Get("/contents", h.ListAvailable)
		r.Get("/contents/{id}", h.Get)
		r.Patch("/contents/{id}", h.Update)
		r.Delete("/contents/{id}", h.Delete)
		r.Post("/contents/{id}/visibility", h.ToggleVisibility)
		r.Post("/contents/{id}/order", h.Move)
		r.Get("/contents/{id}/download", h.Download)
	})
}

// List handles GET /modules/{id}/contents
// @Summary List module content
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {array} models.ContentResponse
// @Failure 403 {object} map[string]string "Not a participant of this course"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id}/contents [get]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	contents, err := h.service.List(r.Context(), moduleID, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, contents)
}

// Create handles POST /modules/{id}/contents/{kind}
// @Summary Add content to a module
// @Description Text and video items take a JSON body. Image and file items take a multipart form
// @Description with "title", optional "visible" and the "file" part.
// @Tags contents
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param kind path string true "Item kind" Enums(text, image, file, video)
// @Param request body models.CreateContentRequest false "Text or video item"
// @Success 201 {object} models.ContentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not allowed to edit the content"
// @Router /modules/{id}/contents/{kind} [post]
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	kind, err := models.ParseItemKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateContentRequest
	var upload *services.Upload

	if kind.Stored() {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		req.Title = r.FormValue("title")
		if raw := r.FormValue("visible"); raw != "" {
			visible, err := strconv.ParseBool(raw)
			if err != nil {
				h.RespondError(w, http.StatusBadRequest, "invalid visible")
				return
			}
			req.Visible = &visible
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			upload = &services.Upload{Filename: header.Filename, Body: file}
		} else if err != http.ErrMissingFile {
			h.RespondError(w, http.StatusBadRequest, "invalid file")
			return
		}
	} else if !h.decodeJSON(w, r, &req) {
		return
	}

	content, err := h.service.Create(r.Context(), moduleID, userID, string(kind), &req, upload)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, content)
}

// ListAvailable handles GET /contents
// @Summary List own content of a kind
// @Description Items of one kind created by the current user, for reuse in other modules
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param kind query string true "Item kind" Enums(text, image, file, video)
// @Success 200 {array} models.ContentResponse
// @Failure 400 {object} map[string]string "Unknown kind"
// @Router /contents [get]
func (h *ContentHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	contents, err := h.service.ListAvailable(r.Context(), userID, r.URL.Query().Get("kind"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, contents)
}

// Get handles GET /contents/{id}
// @Summary Get content
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} models.ContentResponse
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id} [get]
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	content, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, content)
}

// Update handles PATCH /contents/{id}
// @Summary Update content
// @Tags contents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Param request body models.UpdateContentRequest true "Changes"
// @Success 200 {object} models.ContentResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not allowed to edit the content"
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id} [patch]
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateContentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	content, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, content)
}

// ToggleVisibility handles POST /contents/{id}/visibility
// @Summary Toggle content visibility
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} models.VisibilityResponse
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id}/visibility [post]
func (h *ContentHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
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

// Move handles POST /contents/{id}/order
// @Summary Reorder content
// @Description Move one step with direction "up" or "down", or to an absolute position inside the module.
// @Tags contents
// @Accept json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Param request body models.MoveRequest true "Direction or position"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid direction"
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id}/order [post]
func (h *ContentHandler) Move(w http.ResponseWriter, r *http.Request) {
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

// Delete handles DELETE /contents/{id}
// @Summary Delete content
// @Tags contents
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id} [delete]
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Download handles GET /contents/{id}/download
// @Summary Download the file of an image or file item
// @Tags contents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Content has no file"
// @Failure 404 {object} map[string]string "Content not found"
// @Router /contents/{id}/download [get]
func (h *ContentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	file, name, err := h.service.OpenDownload(r.Context(), id, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	if _, err := io.Copy(w, file); err != nil {
		h.Logger.Warn("failed to stream download", zap.Int("content_id", id), zap.Error(err))
	}
}
