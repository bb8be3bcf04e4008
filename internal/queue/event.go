// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a participant successfully
// registers for an event. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	EventName      string `json:"event_name"`
	Venue          string `json:"venue"`
	EventDate      string `json:"event_date"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	USN            string `json:"usn"`
	RegisteredAt   string `json:"registered_at"`
}
