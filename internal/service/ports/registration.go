package ports

import (
	"context"

	"github.com/iliyamo/campus-events/internal/domain"
)

// RegistrationRepo is the persistence surface for registrations. Create
// must enforce the (user, event) uniqueness and the capacity limit
// atomically; the service's own checks exist only to produce precise
// error messages ahead of the race-free write.
type RegistrationRepo interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// UserRepo resolves authenticated identities to their profile on file.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// RegistrationNotifier announces a committed registration to downstream
// consumers. Implementations must never fail the registration workflow.
type RegistrationNotifier interface {
	NotifyRegistered(ctx context.Context, event *domain.Event, reg *domain.Registration)
}
