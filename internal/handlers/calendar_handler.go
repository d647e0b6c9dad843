package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// defaultEventWindow is the range listed when the request gives no end
const defaultEventWindow = 30 * 24 * time.Hour

// CalendarService is the interface that wraps methods for personal calendars and events
type CalendarService interface {
	// Create creates a calendar owned by the user.
	Create(ctx context.Context, userID int, req *models.CreateCalendarRequest) (*models.Calendar, error)
	// List retrieves calendars the user owns or subscribes to.
	List(ctx context.Context, userID int) ([]models.Calendar, error)
	// Get retrieves a calendar with its subscribers. The share token is included for the owner only.
	Get(ctx context.Context, id, userID int) (*models.CalendarDetailResponse, error)
	// Delete removes a calendar. Owner only.
	Delete(ctx context.Context, id, userID int) error
	// CreateEvent adds an event, optionally inviting guests. Owner only.
	CreateEvent(ctx context.Context, calendarID, userID int, req *models.CreateEventRequest) (*models.Event, error)
	// ListEvents retrieves events dated in [from, to).
	ListEvents(ctx context.Context, calendarID, userID int, from, to time.Time) ([]models.Event, error)
	// DeleteEvent removes an event. Allowed to its creator and to the calendar owner.
	DeleteEvent(ctx context.Context, eventID, userID int) error
	// InviteGuests adds guests to an event with a pending status.
	InviteGuests(ctx context.Context, eventID, userID int, userIDs []int) error
	// Respond records the answer of a guest.
	Respond(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error
	// Share activates a share token, creating it on first use.
	Share(ctx context.Context, calendarID, userID int) (*models.ShareToken, error)
	// Unshare deactivates the share token.
	Unshare(ctx context.Context, calendarID, userID int) error
	// Subscribe adds the user as a subscriber of the calendar behind an active token.
	Subscribe(ctx context.Context, token string, userID int) (*models.Calendar, error)
}

// CalendarHandler handles calendar-related HTTP requests
type CalendarHandler struct {
	BaseHandler
	service CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all calendar handler routes
func (h *CalendarHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)

		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Post("/subscribe/{token}", h.Subscribe)
			r.Get("/{id}", h.Get)
			r.Delete("/{id}", h.Delete)
			r.Get("/{id}/events", h.ListEvents)
			r.Post("/{id}/events", h.CreateEvent)
			r.Post("/{id}/share", h.Share)
			r.Delete("/{id}/share", h.Unshare)
		})

		r.Route("/events", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteEvent)
			r.Post("/{id}/guests", h.InviteGuests)
			r.Put("/{id}/response", h.Respond)
		})
	})
}

// List handles GET /calendars
// @Summary List calendars
// @Description Calendars the current user owns or subscribes to
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Calendar
// @Router /calendars [get]
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	calendars, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, calendars)
}

// Create handles POST /calendars
// @Summary Create a calendar
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCalendarRequest true "Calendar"
// @Success 201 {object} models.Calendar
// @Failure 400 {object} map[string]string "Name is required"
// @Router /calendars [post]
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateCalendarRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	calendar, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, calendar)
}

// Get handles GET /calendars/{id}
// @Summary Get a calendar
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Success 200 {object} models.CalendarDetailResponse
// @Failure 404 {object} map[string]string "Calendar not found"
// @Router /calendars/{id} [get]
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	calendar, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, calendar)
}

// Delete handles DELETE /calendars/{id}
// @Summary Delete a calendar
// @Tags calendars
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Calendar not found"
// @Router /calendars/{id} [delete]
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// CreateEvent handles POST /calendars/{id}/events
// @Summary Create an event
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Param request body models.CreateEventRequest true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /calendars/{id}/events [post]
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	calendarID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.CreateEvent(r.Context(), calendarID, userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /calendars/{id}/events
// @Summary List events in a date range
// @Description "from" defaults to the start of the current day and "to" to 30 days after "from"
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Param from query string false "Range start, RFC 3339 or YYYY-MM-DD"
// @Param to query string false "Range end, RFC 3339 or YYYY-MM-DD"
// @Success 200 {array} models.Event
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 404 {object} map[string]string "Calendar not found"
// @Router /calendars/{id}/events [get]
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	calendarID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	now := time.Now().UTC()
	from, ok := h.queryTime(w, r.URL.Query().Get("from"), "from",
		time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	if !ok {
		return
	}
	to, ok := h.queryTime(w, r.URL.Query().Get("to"), "to", from.Add(defaultEventWindow))
	if !ok {
		return
	}

	events, err := h.service.ListEvents(r.Context(), calendarID, userID, from, to)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, events)
}

// queryTime parses an RFC 3339 timestamp or a plain date, using fallback when raw is empty
func (h *CalendarHandler) queryTime(w http.ResponseWriter, raw, name string, fallback time.Time) (time.Time, bool) {
	if raw == "" {
		return fallback, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	h.RespondError(w, http.StatusBadRequest, "invalid "+name)
	return time.Time{}, false
}

// DeleteEvent handles DELETE /events/{id}
// @Summary Delete an event
// @Tags calendars
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the creator or the calendar owner"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [delete]
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id, userID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// InviteGuests handles POST /events/{id}/guests
// @Summary Invite guests to an event
// @Tags calendars
// @Accept json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body models.InviteGuestsRequest true "Guest user IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown users"
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /events/{id}/guests [post]
func (h *CalendarHandler) InviteGuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.InviteGuestsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.InviteGuests(r.Context(), id, userID, req.UserIDs); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Respond handles PUT /events/{id}/response
// @Summary Answer an invitation
// @Tags calendars
// @Accept json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body models.RespondEventRequest true "Answer"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id}/response [put]
func (h *CalendarHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.RespondEventRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Respond(r.Context(), id, userID, req.Status); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Share handles POST /calendars/{id}/share
// @Summary Share a calendar
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Success 200 {object} models.ShareToken
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /calendars/{id}/share [post]
func (h *CalendarHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	token, err := h.service.Share(r.Context(), id, userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, token)
}

// Unshare handles DELETE /calendars/{id}/share
// @Summary Stop sharing a calendar
// @Tags calendars
// @Security BearerAuth
// @Param id path int true "Calendar ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the owner"
// @Router /calendars/{id}/share [delete]
func (h *CalendarHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Unshare(r.Context(), id, userID); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Subscribe handles POST /calendars/subscribe/{token}
// @Summary Subscribe to a shared calendar
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param token path string true "Share token"
// @Success 200 {object} models.Calendar
// @Failure 400 {object} map[string]string "Owner cannot subscribe"
// @Failure 404 {object} map[string]string "Share token not found"
// @Router /calendars/subscribe/{token} [post]
func (h *CalendarHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	calendar, err := h.service.Subscribe(r.Context(), chi.URLParam(r, "token"), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, calendar)
}
