package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCalendarService is a mock implementation of CalendarService
type mockCalendarService struct {
	calendars []models.Calendar
	calendar  *models.Calendar
	detail    *models.CalendarDetailResponse
	event     *models.Event
	events    []models.Event
	token     *models.ShareToken
	id        int
	userID    int
	from, to  time.Time
	guests    []int
	status    models.ParticipationStatus
	shareCode string
	called    string
	err       error
}

func (m *mockCalendarService) Create(ctx context.Context, userID int, req *models.CreateCalendarRequest) (*models.Calendar, error) {
	m.userID, m.called = userID, "Create"
	return m.calendar, m.err
}

func (m *mockCalendarService) List(ctx context.Context, userID int) ([]models.Calendar, error) {
	m.userID, m.called = userID, "List"
	return m.calendars, m.err
}

func (m *mockCalendarService) Get(ctx context.Context, id, userID int) (*models.CalendarDetailResponse, error) {
	m.id, m.userID, m.called = id, userID, "Get"
	return m.detail, m.err
}

func (m *mockCalendarService) Delete(ctx context.Context, id, userID int) error {
	m.id, m.userID, m.called = id, userID, "Delete"
	return m.err
}

func (m *mockCalendarService) CreateEvent(ctx context.Context, calendarID, userID int, req *models.CreateEventRequest) (*models.Event, error) {
	m.id, m.userID, m.guests, m.called = calendarID, userID, req.GuestIDs, "CreateEvent"
	return m.event, m.err
}

func (m *mockCalendarService) ListEvents(ctx context.Context, calendarID, userID int, from, to time.Time) ([]models.Event, error) {
	m.id, m.userID, m.from, m.to, m.called = calendarID, userID, from, to, "ListEvents"
	return m.events, m.err
}

func (m *mockCalendarService) DeleteEvent(ctx context.Context, eventID, userID int) error {
	m.id, m.userID, m.called = eventID, userID, "DeleteEvent"
	return m.err
}

func (m *mockCalendarService) InviteGuests(ctx context.Context, eventID, userID int, userIDs []int) error {
	m.id, m.userID, m.guests, m.called = eventID, userID, userIDs, "InviteGuests"
	return m.err
}

func (m *mockCalendarService) Respond(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error {
	m.id, m.userID, m.status, m.called = eventID, userID, status, "Respond"
	return m.err
}

func (m *mockCalendarService) Share(ctx context.Context, calendarID, userID int) (*models.ShareToken, error) {
	m.id, m.userID, m.called = calendarID, userID, "Share"
	return m.token, m.err
}

func (m *mockCalendarService) Unshare(ctx context.Context, calendarID, userID int) error {
	m.id, m.userID, m.called = calendarID, userID, "Unshare"
	return m.err
}

func (m *mockCalendarService) Subscribe(ctx context.Context, token string, userID int) (*models.Calendar, error) {
	m.shareCode, m.userID, m.called = token, userID, "Subscribe"
	return m.calendar, m.err
}

func TestCalendarHandler_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedCall   string
		expectedID     int
		expectedStatus int
	}{
		{name: "list", method: http.MethodGet, path: "/calendars", expectedCall: "List", expectedStatus: http.StatusOK},
		{name: "create", method: http.MethodPost, path: "/calendars", body: `{"name":"Exams"}`, expectedCall: "Create", expectedStatus: http.StatusCreated},
		{name: "get", method: http.MethodGet, path: "/calendars/4", expectedCall: "Get", expectedID: 4, expectedStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/calendars/4", expectedCall: "Delete", expectedID: 4, expectedStatus: http.StatusNoContent},
		{name: "create event", method: http.MethodPost, path: "/calendars/4/events", body: `{"title":"Exam","date":"2026-01-20T09:00:00Z","guestIds":[2]}`, expectedCall: "CreateEvent", expectedID: 4, expectedStatus: http.StatusCreated},
		{name: "share", method: http.MethodPost, path: "/calendars/4/share", expectedCall: "Share", expectedID: 4, expectedStatus: http.StatusOK},
		{name: "unshare", method: http.MethodDelete, path: "/calendars/4/share", expectedCall: "Unshare", expectedID: 4, expectedStatus: http.StatusNoContent},
		{name: "delete event", method: http.MethodDelete, path: "/events/8", expectedCall: "DeleteEvent", expectedID: 8, expectedStatus: http.StatusNoContent},
		{name: "invite", method: http.MethodPost, path: "/events/8/guests", body: `{"userIds":[2,3]}`, expectedCall: "InviteGuests", expectedID: 8, expectedStatus: http.StatusNoContent},
		{name: "respond", method: http.MethodPut, path: "/events/8/response", body: `{"status":"accepted"}`, expectedCall: "Respond", expectedID: 8, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCalendarService{
				calendar: &models.Calendar{ID: 4},
				detail:   &models.CalendarDetailResponse{Calendar: models.Calendar{ID: 4}},
				event:    &models.Event{ID: 8},
				token:    &models.ShareToken{CalendarID: 4, Token: "tok", Active: true},
			}
			router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

			w := serve(t, router, testRequest{method: tt.method, path: tt.path, body: tt.body, userID: 1})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCall, svc.called)
			assert.Equal(t, tt.expectedID, svc.id)
			assert.Equal(t, 1, svc.userID)
		})
	}
}

func TestCalendarHandler_RequiresAuthentication(t *testing.T) {
	svc := &mockCalendarService{}
	router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

	w := serve(t, router, testRequest{method: http.MethodGet, path: "/calendars"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.called)
}

func TestCalendarHandler_ListEvents(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedFrom   time.Time
		expectedTo     time.Time
	}{
		{
			name:           "dates",
			query:          "?from=2026-01-01&to=2026-02-01",
			expectedStatus: http.StatusOK,
			expectedFrom:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedTo:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "timestamps are converted to UTC",
			query:          "?from=2026-01-01T10:00:00%2B02:00&to=2026-01-02T00:00:00Z",
			expectedStatus: http.StatusOK,
			expectedFrom:   time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
			expectedTo:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "default end",
			query:          "?from=2026-01-01",
			expectedStatus: http.StatusOK,
			expectedFrom:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedTo:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{name: "invalid from", query: "?from=yesterday", expectedStatus: http.StatusBadRequest},
		{name: "invalid to", query: "?from=2026-01-01&to=later", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCalendarService{events: []models.Event{{ID: 1}}}
			router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

			w := serve(t, router, testRequest{method: http.MethodGet, path: "/calendars/4/events" + tt.query, userID: 1})

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, tt.expectedFrom.Equal(svc.from), "from = %s", svc.from)
				assert.True(t, tt.expectedTo.Equal(svc.to), "to = %s", svc.to)
			}
		})
	}
}

func TestCalendarHandler_ListEventsDefaultRange(t *testing.T) {
	svc := &mockCalendarService{}
	router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

	w := serve(t, router, testRequest{method: http.MethodGet, path: "/calendars/4/events", userID: 1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultEventWindow, svc.to.Sub(svc.from))
	assert.Equal(t, 0, svc.from.Hour())
}

func TestCalendarHandler_Subscribe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockCalendarService{calendar: &models.Calendar{ID: 4, Name: "Exams"}}
		router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

		w := serve(t, router, testRequest{method: http.MethodPost, path: "/calendars/subscribe/abc-123", userID: 2})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc-123", svc.shareCode)
		assert.Equal(t, "Exams", decodeBody[models.Calendar](t, w).Name)
	})

	t.Run("inactive token", func(t *testing.T) {
		svc := &mockCalendarService{err: apperrors.NotFound("share token")}
		router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

		w := serve(t, router, testRequest{method: http.MethodPost, path: "/calendars/subscribe/abc-123", userID: 2})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCalendarHandler_RespondPassesStatus(t *testing.T) {
	svc := &mockCalendarService{err: apperrors.Validation("invalid status")}
	router := newTestRouter(NewCalendarHandler(svc, zap.NewNop()))

	w := serve(t, router, testRequest{method: http.MethodPut, path: "/events/8/response", body: `{"status":"maybe"}`, userID: 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ParticipationStatus("maybe"), svc.status)
}
