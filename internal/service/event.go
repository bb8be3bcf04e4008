// Package service implements the three workflows of the platform: the
// ownership-gated event mutations, the registration workflow and the
// statistics aggregator. Services receive their collaborators (repos,
// cache, media, notifier) through constructors and own cache invalidation
// for every write; handlers above them only translate errors to HTTP.
package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-events/internal/cache"
	"github.com/iliyamo/campus-events/internal/config"
	"github.com/iliyamo/campus-events/internal/domain"
	"github.com/iliyamo/campus-events/internal/service/ports"
)

// listLimit caps the newest-events listings (public and per-creator).
const listLimit = 10

// EventService implements event create/update/delete and the cached read
// paths. Only the creator of an event may mutate or delete it.
type EventService struct {
	events ports.EventRepo
	media  ports.MediaUploader
	cache  cache.Store
	ttl    config.CacheTTLConfig
}

func NewEventService(events ports.EventRepo, media ports.MediaUploader, store cache.Store, ttl config.CacheTTLConfig) *EventService {
	return &EventService{events: events, media: media, cache: store, ttl: ttl}
}

// parsedEventInput holds the coerced form of the textual EventInput.
type parsedEventInput struct {
	eventDate       time.Time
	registrationEnd *time.Time
	maxParticipants *int
}

// parseEventInput validates the required fields and coerces the textual
// ones. Dates use the 2006-01-02 form; maxParticipants accepts free text
// where empty or zero means unlimited.
func parseEventInput(in *domain.EventInput) (parsedEventInput, error) {
	var p parsedEventInput
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Venue = strings.TrimSpace(in.Venue)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)

	switch {
	case in.Name == "":
		return p, fmt.Errorf("%w: event name is required", domain.ErrValidation)
	case in.Description == "":
		return p, fmt.Errorf("%w: description is required", domain.ErrValidation)
	case in.Venue == "":
		return p, fmt.Errorf("%w: venue is required", domain.ErrValidation)
	case in.StartTime == "":
		return p, fmt.Errorf("%w: start time is required", domain.ErrValidation)
	case in.EndTime == "":
		return p, fmt.Errorf("%w: end time is required", domain.ErrValidation)
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.EventDate))
	if err != nil {
		return p, fmt.Errorf("%w: invalid event date format", domain.ErrValidation)
	}
	p.eventDate = date

	if s := strings.TrimSpace(in.RegistrationEnd); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			return p, fmt.Errorf("%w: invalid registration end format", domain.ErrValidation)
		}
		p.registrationEnd = &end
	}

	if s := strings.TrimSpace(in.MaxParticipants); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%w: max participants must be a number", domain.ErrValidation)
		}
		if n > 0 {
			p.maxParticipants = &n
		}
	}
	return p, nil
}

// uploadImages sends the provided payloads to the media service and
// returns the hosted URLs, keeping the fallbacks when no payload was
// supplied. The upload and the later database write are deliberately not
// transactional; a failed insert can leave an orphaned media object.
func (s *EventService) uploadImages(ctx context.Context, in *domain.EventInput, posterFallback, logoFallback string) (string, string, error) {
	poster, logo := posterFallback, logoFallback
	if in.Poster != nil {
		url, err := s.media.Upload(ctx, in.Poster.Bytes, in.Poster.Type)
		if err != nil {
			return "", "", fmt.Errorf("%w: poster upload failed: %v", domain.ErrInternal, err)
		}
		poster = url
	}
	if in.Logo != nil {
		url, err := s.media.Upload(ctx, in.Logo.Bytes, in.Logo.Type)
		if err != nil {
			return "", "", fmt.Errorf("%w: logo upload failed: %v", domain.ErrInternal, err)
		}
		logo = url
	}
	return poster, logo, nil
}

// Create validates the input, stores any images with the media service and
// persists a new event owned by creatorID. The creator's listing and the
// public listing are invalidated on success.
func (s *EventService) Create(ctx context.Context, creatorID string, in domain.EventInput) (*domain.Event, error) {
	p, err := parseEventInput(&in)
	if err != nil {
		return nil, err
	}
	poster, logo, err := s.uploadImages(ctx, &in, "", "")
	if err != nil {
		return nil, err
	}

	formLink := strings.TrimSpace(in.FormLink)
	if formLink == "" {
		formLink = domain.DefaultFormLink
	}

	e := &domain.Event{
		ID:              uuid.NewString(),
		CreatorID:       &creatorID,
		Name:            in.Name,
		Description:     in.Description,
		Venue:           in.Venue,
		EventDate:       p.eventDate,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		RegistrationEnd: p.registrationEnd,
		MaxParticipants: p.maxParticipants,
		ClubName:        strings.TrimSpace(in.ClubName),
		PosterURL:       poster,
		LogoURL:         logo,
		FormLink:        formLink,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.cache.Delete(ctx, cache.EventsByCreatorKey(creatorID), cache.EventsPublicKey)
	return e, nil
}

// Get returns a single event, reading through the event:<id> cache entry.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	key := cache.EventKey(id)
	var cached domain.Event
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, e, s.ttl.Event)
	return e, nil
}

// ListMine returns the caller's newest events, reading through the
// per-creator listing entry.
func (s *EventService) ListMine(ctx context.Context, creatorID string) ([]domain.Event, error) {
	key := cache.EventsByCreatorKey(creatorID)
	var cached []domain.Event
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	events, err := s.events.ListByCreator(ctx, creatorID, listLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, events, s.ttl.Lists)
	return events, nil
}

// ListPublic returns the newest events across all creators. Anonymous
// callers are eligible; no identity is involved.
func (s *EventService) ListPublic(ctx context.Context) ([]domain.Event, error) {
	var cached []domain.Event
	if s.cache.Get(ctx, cache.EventsPublicKey, &cached) {
		return cached, nil
	}
	events, err := s.events.ListPublic(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.EventsPublicKey, events, s.ttl.Lists)
	return events, nil
}

// Update merges the provided fields over the existing event. Image URLs
// are replaced only when a new payload accompanies the request; club name
// and form link keep their stored values when submitted empty. Every cache
// entry derived from this event is invalidated.
func (s *EventService) Update(ctx context.Context, userID, eventID string, in domain.EventInput) (*domain.Event, error) {
	existing, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !existing.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: you don't have permission to edit this event", domain.ErrForbidden)
	}

	p, err := parseEventInput(&in)
	if err != nil {
		return nil, err
	}
	poster, logo, err := s.uploadImages(ctx, &in, existing.PosterURL, existing.LogoURL)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Venue = in.Venue
	existing.EventDate = p.eventDate
	existing.StartTime = in.StartTime
	existing.EndTime = in.EndTime
	existing.RegistrationEnd = p.registrationEnd
	existing.MaxParticipants = p.maxParticipants
	existing.PosterURL = poster
	existing.LogoURL = logo
	if club := strings.TrimSpace(in.ClubName); club != "" {
		existing.ClubName = club
	}
	if link := strings.TrimSpace(in.FormLink); link != "" {
		existing.FormLink = link
	}

	if err := s.events.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.invalidateEvent(ctx, existing)
	return existing, nil
}

// Delete removes an event and, through the database cascade, all of its
// registrations. The same cache entries as Update are invalidated.
func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	existing, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(userID) {
		return fmt.Errorf("%w: you don't have permission to delete this event", domain.ErrForbidden)
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.invalidateEvent(ctx, existing)
	return nil
}

// invalidateEvent drops every cache entry whose contents derive from the
// given event: the entity itself, both listings, and the event-scoped
// views (statistics, registrant listing) via pattern delete.
func (s *EventService) invalidateEvent(ctx context.Context, e *domain.Event) {
	keys := []string{cache.EventKey(e.ID), cache.EventsPublicKey}
	if e.CreatorID != nil {
		keys = append(keys, cache.EventsByCreatorKey(*e.CreatorID))
	} else {
		log.Printf("event %s has no creator; skipping creator list invalidation", e.ID)
	}
	s.cache.Delete(ctx, keys...)
	s.cache.DeleteMatching(ctx, cache.EventScopedPattern(e.ID))
}
