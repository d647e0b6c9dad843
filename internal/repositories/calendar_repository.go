package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
)

type calendarRepository struct {
	db *sql.DB
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *sql.DB) *calendarRepository {
	return &calendarRepository{
		db: db,
	}
}

// Create creates a calendar
func (r *calendarRepository) Create(ctx context.Context, calendar *models.Calendar) error {
	query := `INSERT INTO calendars (owner_id, name, overview) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, calendar.OwnerID, calendar.Name, calendar.Overview)
	if err != nil {
		return fmt.Errorf("failed to create calendar: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	calendar.ID = int(id)
	return nil
}

// GetByID retrieves a calendar by its ID
func (r *calendarRepository) GetByID(ctx context.Context, id int) (*models.Calendar, error) {
	query := `SELECT id, owner_id, name, overview, created_at FROM calendars WHERE id = ?`

	var c models.Calendar
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Overview, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("calendar")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	return &c, nil
}

// ListForUser retrieves calendars the user owns or subscribes to
func (r *calendarRepository) ListForUser(ctx context.Context, userID int) ([]models.Calendar, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.overview, c.created_at
		FROM calendars c
		WHERE c.owner_id = ?
			OR EXISTS(SELECT 1 FROM calendar_subscribers s WHERE s.calendar_id = c.id AND s.user_id = ?)
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendars: %w", err)
	}
	defer rows.Close()

	calendars := make([]models.Calendar, 0)
	for rows.Next() {
		var c models.Calendar
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Overview, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar: %w", err)
		}
		calendars = append(calendars, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return calendars, nil
}

// Delete deletes a calendar with its events
func (r *calendarRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("calendar")
	}
	return nil
}

// IsSubscriber checks if the user subscribes to the calendar
func (r *calendarRepository) IsSubscriber(ctx context.Context, calendarID, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM calendar_subscribers WHERE calendar_id = ? AND user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, calendarID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check calendar subscription: %w", err)
	}
	return exists, nil
}

// AddSubscriber subscribes a user; subscribing twice is a no-op
func (r *calendarRepository) AddSubscriber(ctx context.Context, calendarID, userID int) error {
	query := `INSERT IGNORE INTO calendar_subscribers (calendar_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, calendarID, userID); err != nil {
		return fmt.Errorf("failed to add calendar subscriber: %w", err)
	}
	return nil
}

// ListSubscribers retrieves the subscribers of a calendar
func (r *calendarRepository) ListSubscribers(ctx context.Context, calendarID int) ([]models.UserShort, error) {
	query := `
		SELECT u.id, u.full_name, u.email
		FROM calendar_subscribers s
		JOIN users u ON u.id = s.user_id
		WHERE s.calendar_id = ?
		ORDER BY u.full_name
	`

	rows, err := r.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar subscribers: %w", err)
	}
	defer rows.Close()

	users := make([]models.UserShort, 0)
	for rows.Next() {
		var u models.UserShort
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan calendar subscriber: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// CreateEvent creates an event and invites its guests in one transaction
func (r *calendarRepository) CreateEvent(ctx context.Context, event *models.Event, guestIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (calendar_id, created_by, title, description, event_date)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query, event.CalendarID, event.CreatedBy, event.Title, event.Description, event.Date)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := addGuests(ctx, tx, int(id), guestIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	event.ID = int(id)
	return nil
}

// AddGuests invites users to an event; users already invited keep their answer
func (r *calendarRepository) AddGuests(ctx context.Context, eventID int, userIDs []int) error {
	return addGuests(ctx, r.db, eventID, userIDs)
}

func addGuests(ctx context.Context, q querier, eventID int, userIDs []int) error {
	for _, userID := range userIDs {
		query := `INSERT IGNORE INTO event_participations (event_id, user_id, status) VALUES (?, ?, ?)`
		if _, err := q.ExecContext(ctx, query, eventID, userID, string(models.StatusPending)); err != nil {
			return fmt.Errorf("failed to invite guest %d: %w", userID, err)
		}
	}
	return nil
}

// GetEvent retrieves an event with its guests
func (r *calendarRepository) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT id, calendar_id, created_by, title, description, event_date FROM events WHERE id = ?`

	var e models.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.CalendarID, &e.CreatedBy, &e.Title, &e.Description, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("event")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	guests, err := r.loadGuests(ctx, []int{e.ID})
	if err != nil {
		return nil, err
	}
	e.Guests = guests[e.ID]

	return &e, nil
}

// ListEvents retrieves events of a calendar dated in [from, to), by date
func (r *calendarRepository) ListEvents(ctx context.Context, calendarID int, from, to time.Time) ([]models.Event, error) {
	query := `
		SELECT id, calendar_id, created_by, title, description, event_date
		FROM events
		WHERE calendar_id = ? AND event_date >= ? AND event_date < ?
		ORDER BY event_date, id
	`

	rows, err := r.db.QueryContext(ctx, query, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.CalendarID, &e.CreatedBy, &e.Title, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
		ids = append(ids, e.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	guests, err := r.loadGuests(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Guests = guests[events[i].ID]
	}

	return events, nil
}

func (r *calendarRepository) loadGuests(ctx context.Context, eventIDs []int) (map[int][]models.Guest, error) {
	guests := make(map[int][]models.Guest, len(eventIDs))
	if len(eventIDs) == 0 {
		return guests, nil
	}

	query := fmt.Sprintf(`
		SELECT p.event_id, u.id, u.full_name, u.email, p.status
		FROM event_participations p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id IN (%s)
		ORDER BY u.full_name
	`, placeholders(len(eventIDs)))

	rows, err := r.db.QueryContext(ctx, query, intArgs(eventIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event guests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int
		var g models.Guest
		if err := rows.Scan(&eventID, &g.UserID, &g.FullName, &g.Email, &g.Status); err != nil {
			return nil, fmt.Errorf("failed to scan event guest: %w", err)
		}
		guests[eventID] = append(guests[eventID], g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return guests, nil
}

// DeleteEvent deletes an event by ID
func (r *calendarRepository) DeleteEvent(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("event")
	}
	return nil
}

// SetGuestStatus records a guest's answer
func (r *calendarRepository) SetGuestStatus(ctx context.Context, eventID, userID int, status models.ParticipationStatus) error {
	query := `UPDATE event_participations SET status = ? WHERE event_id = ? AND user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, string(status), eventID, userID); err != nil {
		return fmt.Errorf("failed to update participation status: %w", err)
	}
	return nil
}

// IsGuest checks if the user is invited to the event
func (r *calendarRepository) IsGuest(ctx context.Context, eventID, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM event_participations WHERE event_id = ? AND user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event invitation: %w", err)
	}
	return exists, nil
}

// GetShareToken retrieves the share token of a calendar
func (r *calendarRepository) GetShareToken(ctx context.Context, calendarID int) (*models.ShareToken, error) {
	query := `SELECT calendar_id, token, active FROM calendar_share_tokens WHERE calendar_id = ?`
	return r.getShareToken(ctx, query, calendarID)
}

// GetShareTokenByValue retrieves a share token by the token itself
func (r *calendarRepository) GetShareTokenByValue(ctx context.Context, token string) (*models.ShareToken, error) {
	query := `SELECT calendar_id, token, active FROM calendar_share_tokens WHERE token = ?`
	return r.getShareToken(ctx, query, token)
}

func (r *calendarRepository) getShareToken(ctx context.Context, query string, arg any) (*models.ShareToken, error) {
	var t models.ShareToken
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.CalendarID, &t.Token, &t.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("share token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share token: %w", err)
	}
	return &t, nil
}

// SaveShareToken sets an active token for the calendar, replacing any previous one
func (r *calendarRepository) SaveShareToken(ctx context.Context, token *models.ShareToken) error {
	query := `
		INSERT INTO calendar_share_tokens (calendar_id, token, active)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), active = VALUES(active)
	`

	if _, err := r.db.ExecContext(ctx, query, token.CalendarID, token.Token, token.Active); err != nil {
		return fmt.Errorf("failed to save share token: %w", err)
	}
	return nil
}

// DeactivateShareToken stops a calendar from being shared
func (r *calendarRepository) DeactivateShareToken(ctx context.Context, calendarID int) error {
	query := `UPDATE calendar_share_tokens SET active = FALSE WHERE calendar_id = ?`

	if _, err := r.db.ExecContext(ctx, query, calendarID); err != nil {
		return fmt.Errorf("failed to deactivate share token: %w", err)
	}
	return nil
}

// ListReminders retrieves events dated in [from, to) with the e-mails of guests who did not decline
func (r *calendarRepository) ListReminders(ctx context.Context, from, to time.Time) ([]models.EventReminder, error) {
	query := `
		SELECT e.id, e.title, e.event_date, u.email
		FROM events e
		JOIN event_participations p ON p.event_id = e.id AND p.status <> 'declined'
		JOIN users u ON u.id = p.user_id
		WHERE e.event_date >= ? AND e.event_date < ?
		ORDER BY e.event_date, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]models.EventReminder, 0)
	for rows.Next() {
		var id int
		var title, email string
		var date time.Time
		if err := rows.Scan(&id, &title, &date, &email); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		if n := len(reminders); n > 0 && reminders[n-1].EventID == id {
			reminders[n-1].Recipients = append(reminders[n-1].Recipients, email)
			continue
		}
		reminders = append(reminders, models.EventReminder{EventID: id, Title: title, Date: date, Recipients: []string{email}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reminders, nil
}
