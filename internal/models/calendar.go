package models

import "time"

// Calendar groups events and has subscribers
type Calendar struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"ownerId"`
	Name      string    `json:"name"`
	Overview  string    `json:"overview"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParticipationStatus is a guest's answer to an event invitation
type ParticipationStatus string

const (
	StatusPending  ParticipationStatus = "pending"
	StatusAccepted ParticipationStatus = "accepted"
	StatusDeclined ParticipationStatus = "declined"
)

// Valid reports whether the status is one a guest may answer with
func (s ParticipationStatus) Valid() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusPending
}

// Event is a dated entry of a calendar
type Event struct {
	ID          int       `json:"id"`
	CalendarID  int       `json:"calendarId"`
	CreatedBy   int       `json:"createdBy"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Guests      []Guest   `json:"guests,omitempty"`
}

// Guest is a user invited to an event
type Guest struct {
	UserID   int                 `json:"userId"`
	FullName string              `json:"fullName"`
	Email    string              `json:"-"`
	Status   ParticipationStatus `json:"status"`
}

// ShareToken lets other users subscribe to a calendar
type ShareToken struct {
	CalendarID int    `json:"calendarId"`
	Token      string `json:"token"`
	Active     bool   `json:"active"`
}

// EventReminder is an event due on a given day together with the people to remind
type EventReminder struct {
	EventID    int       `json:"eventId"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Recipients []string  `json:"recipients"`
}

// CreateCalendarRequest represents a request to create a calendar
type CreateCalendarRequest struct {
	Name     string `json:"name" example:"Semester 1"`
	Overview string `json:"overview"`
}

// CreateEventRequest represents a request to add an event
type CreateEventRequest struct {
	Title       string    `json:"title" example:"Exam"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" example:"2026-01-20T09:00:00Z"`
	GuestIDs    []int     `json:"guestIds,omitempty"`
}

// InviteGuestsRequest adds guests to an event
type InviteGuestsRequest struct {
	UserIDs []int `json:"userIds"`
}

// RespondEventRequest answers an invitation
type RespondEventRequest struct {
	Status ParticipationStatus `json:"status" example:"accepted"`
}

// CalendarDetailResponse is a calendar with its share state and subscribers
type CalendarDetailResponse struct {
	Calendar
	Subscribers []UserShort `json:"subscribers"`
	ShareToken  *ShareToken `json:"shareToken,omitempty"`
}
