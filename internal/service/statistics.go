package service

import (
	"context"
	"fmt"
	"math"

	"github.com/iliyamo/campus-events/internal/cache"
	"github.com/iliyamo/campus-events/internal/config"
	"github.com/iliyamo/campus-events/internal/domain"
	"github.com/iliyamo/campus-events/internal/service/ports"
)

// StatisticsService computes the creator-facing registration metrics for
// an event. The computation is read-only and deterministic for a fixed
// set of registrations; results are cached with the shortest TTL because
// every registration write invalidates them.
type StatisticsService struct {
	events        ports.EventRepo
	registrations ports.RegistrationRepo
	cache         cache.Store
	ttl           config.CacheTTLConfig
}

func NewStatisticsService(events ports.EventRepo, registrations ports.RegistrationRepo, store cache.Store, ttl config.CacheTTLConfig) *StatisticsService {
	return &StatisticsService{events: events, registrations: registrations, cache: store, ttl: ttl}
}

// Get returns the statistics view for an event. The caller must be the
// event's creator; the ownership check runs before the cache is consulted
// so a cached view is never served to a non-creator.
func (s *StatisticsService) Get(ctx context.Context, userID, eventID string) (*domain.EventStatistics, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: you don't have permission to view statistics for this event", domain.ErrForbidden)
	}

	key := cache.EventStatsKey(eventID)
	var cached domain.EventStatistics
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stats := computeStatistics(event, regs)
	s.cache.Set(ctx, key, stats, s.ttl.Stats)
	return stats, nil
}

// computeStatistics derives the metrics from a fixed event and
// registration set. Running it twice over the same inputs yields
// identical output.
func computeStatistics(event *domain.Event, regs []domain.Registration) *domain.EventStatistics {
	total := len(regs)
	maxParticipants := 0
	if event.MaxParticipants != nil {
		maxParticipants = *event.MaxParticipants
	}

	rate := 0.0
	var available *int
	if maxParticipants > 0 {
		rate = roundTo2(float64(total) / float64(maxParticipants) * 100)
		spots := maxParticipants - total
		available = &spots
	}

	byDate := make(map[string]int, len(regs))
	for _, reg := range regs {
		byDate[shortDate(reg)]++
	}

	return &domain.EventStatistics{
		Event:               *event,
		TotalRegistered:     total,
		MaxParticipants:     maxParticipants,
		RegistrationRate:    rate,
		AvailableSpots:      available,
		RegistrationsByDate: byDate,
		Registrations:       regs,
	}
}

func roundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}

// shortDate buckets a registration by its creation day using the en-US
// short form (M/D/YYYY, no leading zeros).
func shortDate(reg domain.Registration) string {
	t := reg.CreatedAt.UTC()
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
