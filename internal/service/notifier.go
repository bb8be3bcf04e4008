package service

import (
	"context"
	"time"

	"github.com/iliyamo/campus-events/internal/domain"
	"github.com/iliyamo/campus-events/internal/queue"
	"github.com/iliyamo/campus-events/internal/service/queue_publisher"
)

// QueueNotifier publishes registration.confirmed events to RabbitMQ. The
// publish is bounded by its own timeout and any failure is swallowed by
// the publisher after logging; a broker outage never affects the
// registration workflow.
type QueueNotifier struct{}

func NewQueueNotifier() *QueueNotifier { return &QueueNotifier{} }

func (n *QueueNotifier) NotifyRegistered(ctx context.Context, event *domain.Event, reg *domain.Registration) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_ = queue_publisher.PublishRegistrationConfirmed(ctx, queue.RegistrationConfirmedEvent{
		RegistrationID: reg.ID,
		EventID:        event.ID,
		EventName:      event.Name,
		Venue:          event.Venue,
		EventDate:      event.EventDate.UTC().Format("2006-01-02"),
		UserID:         reg.UserID,
		Name:           reg.Name,
		Email:          reg.Email,
		USN:            reg.USN,
		RegisteredAt:   reg.CreatedAt.UTC().Format(time.RFC3339),
	})
}
