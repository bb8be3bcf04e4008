package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/cache"
	"github.com/iliyamo/campus-events/internal/config"
	"github.com/iliyamo/campus-events/internal/domain"
)

var testTTL = config.CacheTTLConfig{
	Event: 5 * time.Minute,
	Lists: 2 * time.Minute,
	Stats: 60 * time.Second,
}

func validEventInput() domain.EventInput {
	return domain.EventInput{
		Name:        "Tech Symposium",
		Description: "Annual department symposium",
		Venue:       "Main Auditorium",
		EventDate:   "2026-10-20",
		StartTime:   "09:00",
		EndTime:     "17:00",
	}
}

func newEventFixture() (*EventService, *fakeEventRepo, *fakeUploader, *cache.MemoryStore) {
	repo := newFakeEventRepo()
	up := &fakeUploader{}
	store := cache.NewMemoryStore()
	return NewEventService(repo, up, store, testTTL), repo, up, store
}

func TestEventCreate(t *testing.T) {
	svc, repo, _, store := newEventFixture()
	ctx := context.Background()

	// Warm the listings so invalidation is observable.
	store.Set(ctx, cache.EventsByCreatorKey("u1"), []domain.Event{}, time.Minute)
	store.Set(ctx, cache.EventsPublicKey, []domain.Event{}, time.Minute)

	in := validEventInput()
	in.MaxParticipants = "150"
	e, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.NotNil(t, e.CreatorID)
	assert.Equal(t, "u1", *e.CreatorID)
	require.NotNil(t, e.MaxParticipants)
	assert.Equal(t, 150, *e.MaxParticipants)
	assert.Equal(t, domain.DefaultFormLink, e.FormLink)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), e.EventDate)

	stored, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Name, stored.Name)

	assert.False(t, store.Contains(cache.EventsByCreatorKey("u1")))
	assert.False(t, store.Contains(cache.EventsPublicKey))
}

func TestEventCreateValidation(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.EventInput)
		msg    string
	}{
		{"missing name", func(in *domain.EventInput) { in.Name = "  " }, "event name is required"},
		{"missing description", func(in *domain.EventInput) { in.Description = "" }, "description is required"},
		{"missing venue", func(in *domain.EventInput) { in.Venue = "" }, "venue is required"},
		{"missing start time", func(in *domain.EventInput) { in.StartTime = "" }, "start time is required"},
		{"missing end time", func(in *domain.EventInput) { in.EndTime = "" }, "end time is required"},
		{"bad date", func(in *domain.EventInput) { in.EventDate = "20-10-2026" }, "invalid event date format"},
		{"bad deadline", func(in *domain.EventInput) { in.RegistrationEnd = "soon" }, "invalid registration end format"},
		{"non-numeric capacity", func(in *domain.EventInput) { in.MaxParticipants = "lots" }, "max participants must be a number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validEventInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, "u1", in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestEventCreateUnlimitedCapacity(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	for _, raw := range []string{"", "0"} {
		in := validEventInput()
		in.MaxParticipants = raw
		e, err := svc.Create(ctx, "u1", in)
		require.NoError(t, err)
		assert.Nil(t, e.MaxParticipants, "raw=%q", raw)
	}
}

func TestEventCreateUploadsImages(t *testing.T) {
	svc, _, up, _ := newEventFixture()
	ctx := context.Background()

	in := validEventInput()
	in.Poster = &domain.ImagePayload{Bytes: []byte{0xff, 0xd8}, Type: "image/jpeg"}
	in.Logo = &domain.ImagePayload{Bytes: []byte{0x89, 0x50}, Type: "image/png"}
	e, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/image/jpeg/1", e.PosterURL)
	assert.Equal(t, "https://img.example/image/png/2", e.LogoURL)
	assert.Equal(t, 2, up.calls)
}

func TestEventCreateUploadFailure(t *testing.T) {
	svc, repo, up, _ := newEventFixture()
	up.err = errors.New("service unavailable")
	ctx := context.Background()

	in := validEventInput()
	in.Poster = &domain.ImagePayload{Bytes: []byte{1}, Type: "image/jpeg"}
	_, err := svc.Create(ctx, "u1", in)
	require.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, repo.events)
}

func TestEventGetReadsThroughCache(t *testing.T) {
	svc, repo, _, store := newEventFixture()
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", validEventInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Name, got.Name)
	assert.True(t, store.Contains(cache.EventKey(e.ID)))

	// Mutate the backing row directly; the cached entry must keep serving
	// the stale view until it expires or is invalidated.
	repo.events[e.ID].Name = "renamed behind the cache"
	again, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Name, again.Name)
}

func TestEventGetNotFound(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventListings(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		in := validEventInput()
		in.Name = "Event " + string(rune('A'+i))
		_, err := svc.Create(ctx, "u1", in)
		require.NoError(t, err)
	}
	in := validEventInput()
	in.Name = "Other Creator"
	_, err := svc.Create(ctx, "u2", in)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 10)
	assert.Equal(t, "Event L", mine[0].Name) // newest first

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 10)
	assert.Equal(t, "Other Creator", public[0].Name)
}

func TestEventListMineCached(t *testing.T) {
	svc, repo, _, store := newEventFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", validEventInput())
	require.NoError(t, err)

	first, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, store.Contains(cache.EventsByCreatorKey("u1")))

	// A row added behind the cache is invisible until the entry expires.
	require.NoError(t, repo.Create(ctx, &domain.Event{ID: "side", CreatorID: ptr("u1"), Name: "side"}))
	second, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestEventUpdate(t *testing.T) {
	svc, _, _, store := newEventFixture()
	ctx := context.Background()

	in := validEventInput()
	in.ClubName = "Robotics Club"
	in.FormLink = "https://example.com/form"
	in.Poster = &domain.ImagePayload{Bytes: []byte{1}, Type: "image/jpeg"}
	e, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)

	// Derived views exist before the update and must be dropped by it.
	store.Set(ctx, cache.EventStatsKey(e.ID), domain.EventStatistics{}, time.Minute)
	store.Set(ctx, cache.RegisteredUsersKey(e.ID), []domain.Registration{}, time.Minute)
	store.Set(ctx, cache.EventKey(e.ID), e, time.Minute)

	upd := validEventInput()
	upd.Name = "Tech Symposium 2026"
	upd.MaxParticipants = "50"
	got, err := svc.Update(ctx, "u1", e.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Tech Symposium 2026", got.Name)
	require.NotNil(t, got.MaxParticipants)
	assert.Equal(t, 50, *got.MaxParticipants)

	// Empty club name and form link keep their stored values; the poster
	// survives because no new payload was attached.
	assert.Equal(t, "Robotics Club", got.ClubName)
	assert.Equal(t, "https://example.com/form", got.FormLink)
	assert.Equal(t, e.PosterURL, got.PosterURL)

	assert.False(t, store.Contains(cache.EventKey(e.ID)))
	assert.False(t, store.Contains(cache.EventStatsKey(e.ID)))
	assert.False(t, store.Contains(cache.RegisteredUsersKey(e.ID)))
	assert.False(t, store.Contains(cache.EventsPublicKey))
	assert.False(t, store.Contains(cache.EventsByCreatorKey("u1")))
}

func TestEventUpdateForbidden(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", validEventInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", e.ID, validEventInput())
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "permission to edit")
}

func TestEventDelete(t *testing.T) {
	svc, repo, _, store := newEventFixture()
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", validEventInput())
	require.NoError(t, err)
	store.Set(ctx, cache.EventStatsKey(e.ID), domain.EventStatistics{}, time.Minute)

	require.ErrorIs(t, svc.Delete(ctx, "intruder", e.ID), domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "u1", e.ID))
	_, err = repo.GetByID(ctx, e.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, store.Contains(cache.EventStatsKey(e.ID)))

	require.ErrorIs(t, svc.Delete(ctx, "u1", e.ID), domain.ErrNotFound)
}

func ptr(s string) *string { return &s }
