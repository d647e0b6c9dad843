package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MembershipService is the interface that wraps methods for course participation
type MembershipService interface {
	// Enroll joins the user to a course with its access key.
	//
	// Returns a conflict error when the course takes no key, the key is wrong
	// or the user is already a participant.
	Enroll(ctx context.Context, courseSlug string, userID int, accessKey string) (*models.Membership, error)
	// ListParticipants retrieves course participants. Requires the edit_participants capability.
	ListParticipants(ctx context.Context, courseSlug string, userID int) ([]models.Participant, error)
	// SetParticipants replaces the participant set and reports who was added and removed.
	SetParticipants(ctx context.Context, courseSlug string, userID int, userIDs []int) (*models.ParticipantsDiff, error)
}

// MembershipHandler handles enrollment and participant HTTP requests
type MembershipHandler struct {
	BaseHandler
	service MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(service MembershipService, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all membership handler routes
func (h *MembershipHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Post("/courses/{slug}/enroll", h.Enroll)
		r.Get("/courses/{slug}/participants", h.ListParticipants)
		r.Put("/courses/{slug}/participants", h.SetParticipants)
	})
}

// Enroll handles POST /courses/{slug}/enroll
// @Summary Enroll in a course
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body models.EnrollRequest true "Access key"
// @Success 201 {object} models.Membership
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Wrong key or already a participant"
// @Router /courses/{slug}/enroll [post]
func (h *MembershipHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.EnrollRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	membership, err := h.service.Enroll(r.Context(), chi.URLParam(r, "slug"), userID, req.AccessKey)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, membership)
}

// ListParticipants handles GET /courses/{slug}/participants
// @Summary List course participants
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {array} models.Participant
// @Failure 403 {object} map[string]string "Not allowed to edit the participants"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{slug}/participants [get]
func (h *MembershipHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	participants, err := h.service.ListParticipants(r.Context(), chi.URLParam(r, "slug"), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, participants)
}

// SetParticipants handles PUT /courses/{slug}/participants
// @Summary Replace course participants
// @Description Users missing from the list are removed, new ones are added and notified
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body models.SetParticipantsRequest true "Participant user IDs"
// @Success 200 {object} models.ParticipantsDiff
// @Failure 400 {object} map[string]string "Unknown users"
// @Failure 403 {object} map[string]string "Not allowed to edit the participants"
// @Router /courses/{slug}/participants [put]
func (h *MembershipHandler) SetParticipants(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.SetParticipantsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	diff, err := h.service.SetParticipants(r.Context(), chi.URLParam(r, "slug"), userID, req.UserIDs)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, diff)
}
