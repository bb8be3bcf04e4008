package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-events/internal/cache"
	"github.com/iliyamo/campus-events/internal/config"
	"github.com/iliyamo/campus-events/internal/domain"
	"github.com/iliyamo/campus-events/internal/service/ports"
)

// RegistrationService commits participants into events. The precondition
// checks run in a fixed order and fail fast; the repository's Create is the
// race-free backstop for the duplicate and capacity invariants.
type RegistrationService struct {
	registrations ports.RegistrationRepo
	events        ports.EventRepo
	users         ports.UserRepo
	cache         cache.Store
	notifier      ports.RegistrationNotifier
	ttl           config.CacheTTLConfig
	now           func() time.Time
}

func NewRegistrationService(
	registrations ports.RegistrationRepo,
	events ports.EventRepo,
	users ports.UserRepo,
	store cache.Store,
	notifier ports.RegistrationNotifier,
	ttl config.CacheTTLConfig,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		users:         users,
		cache:         store,
		notifier:      notifier,
		ttl:           ttl,
		now:           time.Now,
	}
}

// SetClock replaces the time source used for the registration deadline.
// Intended for tests.
func (s *RegistrationService) SetClock(now func() time.Time) { s.now = now }

// Register enrolls the calling user into an event. Checks run in order:
// profile completeness, event existence, duplicate registration,
// registration deadline, capacity; then the row is inserted with the
// user's captured name and email. On success the statistics, registrant
// listing and single-event cache entries are dropped and downstream
// consumers are notified fire-and-forget.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID, usn, phoneNumber string) (*domain.Registration, error) {
	usn = strings.TrimSpace(usn)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if usn == "" {
		return nil, fmt.Errorf("%w: usn is required", domain.ErrValidation)
	}
	if len(phoneNumber) < 10 {
		return nil, fmt.Errorf("%w: phone number must be at least 10 digits", domain.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Name == "" || user.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required in your profile", domain.ErrValidation)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.registrations.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// A date-only deadline of day D means registration closes at D 00:00
	// UTC; the close day itself is already closed.
	if event.RegistrationEnd != nil && s.now().After(*event.RegistrationEnd) {
		return nil, fmt.Errorf("%w: registration for this event has ended", domain.ErrValidation)
	}

	if event.MaxParticipants != nil {
		count, err := s.registrations.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= *event.MaxParticipants {
			return nil, fmt.Errorf("%w: event has reached maximum participants", domain.ErrValidation)
		}
	}

	reg := &domain.Registration{
		ID:          uuid.NewString(),
		EventID:     eventID,
		UserID:      userID,
		Name:        user.Name,
		Email:       user.Email,
		USN:         usn,
		PhoneNumber: phoneNumber,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx,
		cache.EventStatsKey(eventID),
		cache.RegisteredUsersKey(eventID),
		cache.EventKey(eventID))

	if s.notifier != nil {
		go s.notifier.NotifyRegistered(context.WithoutCancel(ctx), event, reg)
	}
	return reg, nil
}

// Status reports whether the calling user holds a registration for the
// event and returns its detail if so. This is a pure read with no cache.
func (s *RegistrationService) Status(ctx context.Context, userID, eventID string) (*domain.RegistrationStatus, error) {
	reg, err := s.registrations.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.RegistrationStatus{IsRegistered: false}, nil
		}
		return nil, err
	}
	return &domain.RegistrationStatus{IsRegistered: true, Registration: reg}, nil
}

// ListForEvent returns all registrations for an event, newest first. Only
// the event's creator may call it; results read through the registrant
// listing cache entry.
func (s *RegistrationService) ListForEvent(ctx context.Context, userID, eventID string) ([]domain.Registration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: you don't have permission to view registered users for this event", domain.ErrForbidden)
	}

	key := cache.RegisteredUsersKey(eventID)
	var cached []domain.Registration
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, regs, s.ttl.Stats)
	return regs, nil
}
