package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/campus-events/internal/domain"
)

// EventRepo provides CRUD operations for the 'events' table. Rows are
// scanned into domain.Event; nullable columns (creator, registration end,
// capacity) map to pointer fields. All timestamps are stored in UTC.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = `id, creator_id, name, description, venue, event_date,
	start_time, end_time, registration_end, max_participants, club_name,
	poster_url, logo_url, form_link, created_at, updated_at`

// Create inserts a new event row. The caller supplies the generated ID;
// timestamps are read back after the insert so the returned entity carries
// the database defaults.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	const q = `INSERT INTO events
		(id, creator_id, name, description, venue, event_date, start_time, end_time,
		 registration_end, max_participants, club_name, poster_url, logo_url, form_link)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.DB.ExecContext(ctx, q,
		e.ID, e.CreatorID, e.Name, e.Description, e.Venue, e.EventDate,
		e.StartTime, e.EndTime, e.RegistrationEnd, e.MaxParticipants,
		e.ClubName, e.PosterURL, e.LogoURL, e.FormLink)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// GetByID returns a single event or domain.ErrNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: event", domain.ErrNotFound)
	}
	return e, err
}

// ListByCreator returns the creator's newest events, newest first.
func (r *EventRepo) ListByCreator(ctx context.Context, creatorID string, limit int) ([]domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE creator_id = ? ORDER BY created_at DESC LIMIT ?`,
		creatorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListPublic returns the newest events across all creators, newest first.
func (r *EventRepo) ListPublic(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Update rewrites the mutable columns of an existing event. The identifier
// and creator are immutable; updated_at refreshes via the column default.
func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	const q = `UPDATE events SET
		name=?, description=?, venue=?, event_date=?, start_time=?, end_time=?,
		registration_end=?, max_participants=?, club_name=?, poster_url=?,
		logo_url=?, form_link=?
		WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, q,
		e.Name, e.Description, e.Venue, e.EventDate, e.StartTime, e.EndTime,
		e.RegistrationEnd, e.MaxParticipants, e.ClubName, e.PosterURL,
		e.LogoURL, e.FormLink, e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows is ambiguous in MySQL (no change vs no row),
		// so confirm existence before reporting not found.
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	fresh, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Delete removes an event row. Registrations cascade at the database.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: event", domain.ErrNotFound)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e       domain.Event
		creator sql.NullString
		regEnd  sql.NullTime
		maxPart sql.NullInt64
	)
	err := row.Scan(&e.ID, &creator, &e.Name, &e.Description, &e.Venue,
		&e.EventDate, &e.StartTime, &e.EndTime, &regEnd, &maxPart,
		&e.ClubName, &e.PosterURL, &e.LogoURL, &e.FormLink,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if creator.Valid {
		c := creator.String
		e.CreatorID = &c
	}
	if regEnd.Valid {
		t := regEnd.Time.UTC()
		e.RegistrationEnd = &t
	}
	if maxPart.Valid {
		m := int(maxPart.Int64)
		e.MaxParticipants = &m
	}
	return &e, nil
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
