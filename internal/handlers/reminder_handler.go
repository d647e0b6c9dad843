package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReminderService queues calendar event reminders
type ReminderService interface {
	// EnqueueReminders queues a reminder for every event dated on day and returns how many were queued.
	EnqueueReminders(ctx context.Context, day time.Time) (int, error)
}

// ReminderHandler exposes reminder dispatch to internal callers
type ReminderHandler struct {
	BaseHandler
	service ReminderService
	now     func() time.Time
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(service ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		now:         time.Now,
	}
}

// RegisterRoutes registers the reminder route; r is expected to be guarded by the API key
func (h *ReminderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/internal/reminders", h.Enqueue)
}

// Enqueue handles POST /internal/reminders
// @Summary Queue event reminders
// @Description Queues reminder e-mails for events on the given day, today in UTC by default
// @Tags internal
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "Day as YYYY-MM-DD"
// @Success 200 {object} map[string]int "Number of queued reminders"
// @Failure 400 {object} map[string]string "Invalid day"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Router /internal/reminders [post]
func (h *ReminderHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	day := h.now().UTC()
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid day")
			return
		}
		day = parsed
	}

	queued, err := h.service.EnqueueReminders(r.Context(), day)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"queued": queued})
}
