package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/coursehub/backend/internal/notifications"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// Sender delivers composed messages; *mail.Dialer implements it
type Sender interface {
	// DialAndSend opens a connection to the SMTP server and sends the messages
	DialAndSend(m ...*mail.Message) error
}

var (
	enrollmentTemplate = template.Must(template.New("enrollment").Parse(
		`<p>Hello {{.FullName}},</p>` +
			`<p>you are now a participant of <b>{{.CourseTitle}}</b>.</p>` +
			`<p>Course address: /courses/{{.CourseSlug}}</p>`))

	reminderTemplate = template.Must(template.New("reminder").Parse(
		`<p>Reminder: <b>{{.Title}}</b> takes place on {{.Date.Format "Monday, 2 January 2006 15:04 MST"}}.</p>`))
)

// Worker turns notification tasks into e-mails
type Worker struct {
	logger *zap.Logger
	sender Sender
	from   string
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, sender Sender, from string) *Worker {
	return &Worker{
		logger: logger,
		sender: sender,
		from:   from,
	}
}

// HandleEnrollmentConfirmation sends the confirmation e-mail of a new membership
func (w *Worker) HandleEnrollmentConfirmation(ctx context.Context, t *asynq.Task) error {
	n, err := notifications.ParseEnrollment(t)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if n.Email == "" {
		w.logger.Warn("Enrollment confirmation without recipient", zap.Int("user_id", n.UserID))
		return nil
	}

	body, err := render(enrollmentTemplate, n)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	m := w.newMessage(fmt.Sprintf("You joined %s", n.CourseTitle), body)
	m.SetHeader("To", n.Email)

	if err := w.sender.DialAndSend(m); err != nil {
		w.logger.Error("Failed to send enrollment confirmation", zap.Int("user_id", n.UserID), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	w.logger.Info("Enrollment confirmation sent",
		zap.Int("user_id", n.UserID),
		zap.String("course", n.CourseSlug),
	)
	return nil
}

// HandleEventReminder sends one blind-copied reminder to all recipients of an event
func (w *Worker) HandleEventReminder(ctx context.Context, t *asynq.Task) error {
	r, err := notifications.ParseEventReminder(t)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if len(r.Recipients) == 0 {
		return nil
	}

	body, err := render(reminderTemplate, r)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	m := w.newMessage(fmt.Sprintf("Reminder: %s on %s", r.Title, r.Date.Format(time.DateOnly)), body)
	m.SetHeader("To", w.from)
	m.SetHeader("Bcc", r.Recipients...)

	if err := w.sender.DialAndSend(m); err != nil {
		w.logger.Error("Failed to send event reminder", zap.Int("event_id", r.EventID), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	w.logger.Info("Event reminder sent",
		zap.Int("event_id", r.EventID),
		zap.Int("recipients", len(r.Recipients)),
	)
	return nil
}

func (w *Worker) newMessage(subject, body string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", w.from)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
