// Package notifications hands e-mail work to the background worker through asynq
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/hibiken/asynq"
)

// Task types and the queue they travel on
const (
	TypeEnrollmentConfirmation = "membership:confirmation"
	TypeEventReminder          = "event:reminder"
	Queue                      = "notifications"
)

const maxRetry = 5

// enqueuer is satisfied by *asynq.Client
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// dispatcher enqueues notification tasks
type dispatcher struct {
	client enqueuer
}

// NewDispatcher creates a dispatcher on top of an asynq client
func NewDispatcher(client enqueuer) *dispatcher {
	return &dispatcher{
		client: client,
	}
}

// NotifyEnrollment queues a membership confirmation e-mail
func (d *dispatcher) NotifyEnrollment(ctx context.Context, n models.EnrollmentNotification) error {
	task, err := newTask(TypeEnrollmentConfirmation, n)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, task)
}

// NotifyEventReminder queues the reminder e-mails of one event
func (d *dispatcher) NotifyEventReminder(ctx context.Context, r models.EventReminder) error {
	task, err := newTask(TypeEventReminder, r)
	if err != nil {
		return err
	}
	// one reminder per event and day, duplicates from overlapping runs are dropped by asynq
	return d.enqueue(ctx, task, asynq.TaskID(fmt.Sprintf("reminder:%d:%s", r.EventID, r.Date.Format(time.DateOnly))))
}

func (d *dispatcher) enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	opts = append([]asynq.Option{asynq.Queue(Queue), asynq.MaxRetry(maxRetry)}, opts...)
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", task.Type(), err)
	}
	return nil
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

// ParseEnrollment decodes a membership confirmation task
func ParseEnrollment(t *asynq.Task) (models.EnrollmentNotification, error) {
	var n models.EnrollmentNotification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		return n, fmt.Errorf("failed to decode %s payload: %w", t.Type(), err)
	}
	return n, nil
}

// ParseEventReminder decodes an event reminder task
func ParseEventReminder(t *asynq.Task) (models.EventReminder, error) {
	var r models.EventReminder
	if err := json.Unmarshal(t.Payload(), &r); err != nil {
		return r, fmt.Errorf("failed to decode %s payload: %w", t.Type(), err)
	}
	return r, nil
}
