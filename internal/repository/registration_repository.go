package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/campus-events/internal/domain"
)

// RegistrationRepo provides persistence for the 'registrations' table.
//
// Create is the write path of the registration workflow and is responsible
// for closing both of its races: the (user, event) unique key rejects
// duplicate submissions that slipped past the application-level check, and
// the capacity check runs inside a transaction that locks the event row
// with SELECT ... FOR UPDATE, so two concurrent inserts near the capacity
// boundary serialize on the row lock and the count can never overshoot.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

const registrationColumns = `id, event_id, user_id, name, email, usn,
	phone_number, attended_at, created_at, updated_at`

// Create inserts a registration after re-validating capacity under a row
// lock on the event. The entity's timestamps are populated from the
// database on success.
func (r *RegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event row for the duration of the transaction. Concurrent
	// registrations for the same event queue up here.
	var maxPart sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT max_participants FROM events WHERE id = ? FOR UPDATE`,
		reg.EventID).Scan(&maxPart)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: event", domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	// Duplicate before capacity: a racing resubmission against a full
	// event must still answer "already registered", not "event full".
	var dup int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM registrations WHERE event_id = ? AND user_id = ? LIMIT 1`,
		reg.EventID, reg.UserID).Scan(&dup)
	if err == nil {
		return fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if maxPart.Valid {
		var count int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM registrations WHERE event_id = ?`,
			reg.EventID).Scan(&count); err != nil {
			return err
		}
		if count >= maxPart.Int64 {
			return fmt.Errorf("%w: event has reached maximum participants", domain.ErrValidation)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO registrations (id, event_id, user_id, name, email, usn, phone_number)
		 VALUES (?,?,?,?,?,?,?)`,
		reg.ID, reg.EventID, reg.UserID, reg.Name, reg.Email, reg.USN, reg.PhoneNumber)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
		}
		return err
	}

	// Read the row back inside the transaction to pick up timestamps.
	row := tx.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, reg.ID)
	fresh, err := scanRegistration(row)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	*reg = *fresh
	return nil
}

// GetByEventAndUser returns the registration binding one user to one event,
// or domain.ErrNotFound.
func (r *RegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = ? AND user_id = ? LIMIT 1`,
		eventID, userID)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: registration", domain.ErrNotFound)
	}
	return reg, err
}

// ListByEvent returns all registrations for an event, newest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = ? ORDER BY created_at DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

// CountByEvent returns the number of committed registrations for an event.
func (r *RegistrationRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var (
		reg      domain.Registration
		attended sql.NullTime
	)
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Name, &reg.Email,
		&reg.USN, &reg.PhoneNumber, &attended, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if attended.Valid {
		t := attended.Time.UTC()
		reg.AttendedAt = &t
	}
	return &reg, nil
}
