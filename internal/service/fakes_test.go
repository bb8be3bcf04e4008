package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/campus-events/internal/domain"
)

// fakeEventRepo keeps events in memory, newest first like the SQL listings.
// Delete cascades into the registration repo the same way the foreign key
// does in MySQL.
type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*domain.Event
	order  []string // insertion order, oldest first
	regs   *fakeRegistrationRepo
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*domain.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
		cp.UpdatedAt = cp.CreatedAt
	}
	r.events[e.ID] = &cp
	r.order = append(r.order, e.ID)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) ListByCreator(_ context.Context, creatorID string, limit int) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.events[r.order[i]]
		if e != nil && e.OwnedBy(creatorID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListPublic(_ context.Context, limit int) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		if e := r.events[r.order[i]]; e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, e.ID)
	}
	cp := *e
	cp.UpdatedAt = time.Now().UTC()
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.events[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	delete(r.events, id)
	r.mu.Unlock()
	if r.regs != nil {
		r.regs.deleteByEvent(id)
	}
	return nil
}

// fakeRegistrationRepo mirrors the transactional Create of the SQL
// implementation: uniqueness and capacity are checked under one lock so
// concurrent callers observe the same invariants as the database enforces.
type fakeRegistrationRepo struct {
	mu     sync.Mutex
	events *fakeEventRepo
	byKey  map[string]*domain.Registration // eventID + "|" + userID
	byEv   map[string][]string             // eventID -> keys, oldest first
	now    func() time.Time
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	r := &fakeRegistrationRepo{
		events: events,
		byKey:  map[string]*domain.Registration{},
		byEv:   map[string][]string{},
		now:    func() time.Time { return time.Now().UTC() },
	}
	events.regs = r
	return r
}

func regKey(eventID, userID string) string { return eventID + "|" + userID }

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, err := r.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return err
	}

	// Duplicate before capacity, matching the SQL transaction.
	key := regKey(reg.EventID, reg.UserID)
	if _, ok := r.byKey[key]; ok {
		return fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
	}
	if event.MaxParticipants != nil && len(r.byEv[reg.EventID]) >= *event.MaxParticipants {
		return fmt.Errorf("%w: event has reached maximum participants", domain.ErrValidation)
	}

	reg.CreatedAt = r.now()
	reg.UpdatedAt = reg.CreatedAt
	cp := *reg
	r.byKey[key] = &cp
	r.byEv[reg.EventID] = append(r.byEv[reg.EventID], key)
	return nil
}

func (r *fakeRegistrationRepo) GetByEventAndUser(_ context.Context, eventID, userID string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byKey[regKey(eventID, userID)]
	if !ok {
		return nil, fmt.Errorf("%w: registration", domain.ErrNotFound)
	}
	cp := *reg
	return &cp, nil
}

func (r *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := r.byEv[eventID]
	out := make([]domain.Registration, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- { // newest first
		out = append(out, *r.byKey[keys[i]])
	}
	return out, nil
}

func (r *fakeRegistrationRepo) CountByEvent(_ context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEv[eventID]), nil
}

// deleteByEvent drops every registration of an event, standing in for the
// ON DELETE CASCADE foreign key.
func (r *fakeRegistrationRepo) deleteByEvent(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.byEv[eventID] {
		delete(r.byKey, key)
	}
	delete(r.byEv, eventID)
}

// fakeUserRepo serves profiles from a fixed map.
type fakeUserRepo struct {
	users map[string]domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return u, nil
}

// fakeUploader hands out sequential URLs, or fails when err is set.
type fakeUploader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, mimeType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	u.calls++
	return fmt.Sprintf("https://img.example/%s/%d", mimeType, u.calls), nil
}

// fakeNotifier records notifications on a buffered channel so tests can
// wait for the fire-and-forget goroutine.
type fakeNotifier struct {
	got chan string // registration IDs
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{got: make(chan string, 8)}
}

func (n *fakeNotifier) NotifyRegistered(_ context.Context, _ *domain.Event, reg *domain.Registration) {
	n.got <- reg.ID
}
