package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarRepository defines methods for calendar, event and share token data access
type CalendarRepository interface {
	Create(ctx context.Context, calendar *models.Calendar) error
	GetByID(ctx context.Context, id int) (*models.Calendar, error)
	// ListForUser retrieves calendars the user owns or subscribes to
	ListForUser(ctx context.Context, userID int) ([]models.Calendar, error)
	Delete(ctx context.Context, id int) error

	IsSubscriber(ctx context.Context, calendarID, userID int) (bool, error)
	AddSubscriber(ctx context.Context, calendarID, userID int) error
	ListSubscribers(ctx context.Context, calendarID int) ([]models.UserShort, error)

	// CreateEvent inserts an event and invites guestIDs
	//
	// "ctx" is the context for the request.
	// "event" is the event to create; its ID is set on success.
	// "guestIDs" are invited with the pending status.
	//
	// Returns an error if any.
	CreateEvent(ctx context.Context, event *models.Event, guestIDs []int) error
	AddGuests(ctx context.Context, eventID int, userIDs []int) error
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	// ListEvents retrieves the events of a calendar dated in [from, to)
	ListEvents(ctx context.Context, calendarID int, from, to time.Time) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	SetGuestStatus(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error
	IsGuest(ctx context.Context, eventID, userID int) (bool, error)

	GetShareToken(ctx context.Context, calendarID int) (*models.ShareToken, error)
	GetShareTokenByValue(ctx context.Context, token string) (*models.ShareToken, error)
	SaveShareToken(ctx context.Context, token *models.ShareToken) error
	DeactivateShareToken(ctx context.Context, calendarID int) error

	// ListReminders retrieves events dated in [from, to) with the e-mails to remind
	ListReminders(ctx context.Context, from, to time.Time) ([]models.EventReminder, error)
}

// ReminderNotifier queues event reminders
type ReminderNotifier interface {
	NotifyEventReminder(ctx context.Context, r models.EventReminder) error
}

// maxEventRange bounds a single event listing
const maxEventRange = 366 * 24 * time.Hour

type calendarService struct {
	repo     CalendarRepository
	users    ParticipantUsers
	notifier ReminderNotifier
	logger   *zap.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(repo CalendarRepository, users ParticipantUsers, notifier ReminderNotifier, logger *zap.Logger) *calendarService {
	return &calendarService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Create creates a calendar owned by userID
func (s *calendarService) Create(ctx context.Context, userID int, req *models.CreateCalendarRequest) (*models.Calendar, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}

	calendar := &models.Calendar{
		OwnerID:  userID,
		Name:     name,
		Overview: strings.TrimSpace(req.Overview),
	}
	if err := s.repo.Create(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// List returns the calendars a user owns or subscribes to
func (s *calendarService) List(ctx context.Context, userID int) ([]models.Calendar, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Get returns a calendar with its subscribers. The share token is shown to the owner only.
func (s *calendarService) Get(ctx context.Context, id, userID int) (*models.CalendarDetailResponse, error) {
	calendar, err := s.readable(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.repo.ListSubscribers(ctx, calendar.ID)
	if err != nil {
		return nil, err
	}
	resp := &models.CalendarDetailResponse{Calendar: *calendar, Subscribers: subscribers}

	if calendar.OwnerID == userID {
		token, err := s.repo.GetShareToken(ctx, calendar.ID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		resp.ShareToken = token
	}
	return resp, nil
}

// Delete deletes a calendar with its events
func (s *calendarService) Delete(ctx context.Context, id, userID int) error {
	calendar, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, calendar.ID)
}

// CreateEvent adds an event to a calendar the user owns
func (s *calendarService) CreateEvent(ctx context.Context, calendarID, userID int, req *models.CreateEventRequest) (*models.Event, error) {
	calendar, err := s.owned(ctx, calendarID, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if req.Date.IsZero() {
		return nil, apperrors.Validation("date is required")
	}
	guests, err := s.validGuests(ctx, req.GuestIDs)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		CalendarID:  calendar.ID,
		CreatedBy:   userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date.UTC(),
	}
	if err := s.repo.CreateEvent(ctx, event, guests); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns the events of a calendar dated in [from, to)
func (s *calendarService) ListEvents(ctx context.Context, calendarID, userID int, from, to time.Time) ([]models.Event, error) {
	if !to.After(from) {
		return nil, apperrors.Validation("the end of the range must be after its start")
	}
	if to.Sub(from) > maxEventRange {
		return nil, apperrors.Validation("the range cannot be longer than a year")
	}

	calendar, err := s.readable(ctx, calendarID, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, calendar.ID, from, to)
}

// DeleteEvent deletes an event; allowed to its creator and to the calendar owner
func (s *calendarService) DeleteEvent(ctx context.Context, eventID, userID int) error {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != userID {
		if _, err := s.owned(ctx, event.CalendarID, userID); err != nil {
			return err
		}
	}
	return s.repo.DeleteEvent(ctx, event.ID)
}

// InviteGuests invites users to an event of a calendar the user owns
func (s *calendarService) InviteGuests(ctx context.Context, eventID, userID int, userIDs []int) error {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.owned(ctx, event.CalendarID, userID); err != nil {
		return err
	}

	guests, err := s.validGuests(ctx, userIDs)
	if err != nil {
		return err
	}
	if len(guests) == 0 {
		return apperrors.Validation("at least one guest is required")
	}
	return s.repo.AddGuests(ctx, event.ID, guests)
}

// Respond records a guest's answer to an invitation
func (s *calendarService) Respond(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error {
	if !status.Valid() || status == models.StatusPending {
		return apperrors.Validation("status must be %q or %q", models.StatusAccepted, models.StatusDeclined)
	}

	guest, err := s.repo.IsGuest(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !guest {
		return apperrors.NotFound("event")
	}
	return s.repo.SetGuestStatus(ctx, eventID, userID, status)
}

// Share creates a new active share token for a calendar the user owns
func (s *calendarService) Share(ctx context.Context, calendarID, userID int) (*models.ShareToken, error) {
	calendar, err := s.owned(ctx, calendarID, userID)
	if err != nil {
		return nil, err
	}

	token := &models.ShareToken{
		CalendarID: calendar.ID,
		Token:      uuid.NewString(),
		Active:     true,
	}
	if err := s.repo.SaveShareToken(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Unshare deactivates the share token of a calendar
func (s *calendarService) Unshare(ctx context.Context, calendarID, userID int) error {
	calendar, err := s.owned(ctx, calendarID, userID)
	if err != nil {
		return err
	}
	return s.repo.DeactivateShareToken(ctx, calendar.ID)
}

// Subscribe adds the user to the subscribers of the calendar behind an active token
func (s *calendarService) Subscribe(ctx context.Context, token string, userID int) (*models.Calendar, error) {
	shareToken, err := s.repo.GetShareTokenByValue(ctx, token)
	if err != nil {
		return nil, err
	}
	if !shareToken.Active {
		return nil, apperrors.NotFound("share token")
	}

	calendar, err := s.repo.GetByID(ctx, shareToken.CalendarID)
	if err != nil {
		return nil, err
	}
	if calendar.OwnerID == userID {
		return nil, apperrors.Validation("you cannot subscribe to your own calendar")
	}

	if err := s.repo.AddSubscriber(ctx, calendar.ID, userID); err != nil {
		return nil, err
	}
	return calendar, nil
}

// EnqueueReminders queues a reminder for every event dated on day.
// Returns the number of queued reminders; single failures are logged and skipped.
func (s *calendarService) EnqueueReminders(ctx context.Context, day time.Time) (int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	reminders, err := s.repo.ListReminders(ctx, from, to)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, r := range reminders {
		if err := s.notifier.NotifyEventReminder(ctx, r); err != nil {
			s.logger.Warn("failed to queue event reminder", zap.Int("event_id", r.EventID), zap.Error(err))
			continue
		}
		queued++
	}

	s.logger.Info("event reminders queued",
		zap.String("day", from.Format(time.DateOnly)),
		zap.Int("events", len(reminders)),
		zap.Int("queued", queued),
	)
	return queued, nil
}

// readable returns the calendar when userID owns or subscribes to it
func (s *calendarService) readable(ctx context.Context, id, userID int) (*models.Calendar, error) {
	calendar, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calendar.OwnerID == userID {
		return calendar, nil
	}

	subscribed, err := s.repo.IsSubscriber(ctx, calendar.ID, userID)
	if err != nil {
		return nil, err
	}
	if !subscribed {
		return nil, apperrors.NotFound("calendar")
	}
	return calendar, nil
}

// owned returns the calendar when userID owns it. Subscribers are refused, others see it as missing.
func (s *calendarService) owned(ctx context.Context, id, userID int) (*models.Calendar, error) {
	calendar, err := s.readable(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if calendar.OwnerID != userID {
		return nil, apperrors.PermissionDenied("only the owner can change this calendar")
	}
	return calendar, nil
}

func (s *calendarService) validGuests(ctx context.Context, userIDs []int) ([]int, error) {
	unique := make([]int, 0, len(userIDs))
	for _, id := range userIDs {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return unique, nil
	}

	count, err := s.users.CountByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if count != len(unique) {
		return nil, apperrors.Validation("some guests do not exist")
	}
	return unique, nil
}
