package domain

import "time"

// Registration binds one user to one event. Name and email are captured at
// registration time and never re-derived from the user row afterwards.
// AttendedAt is written by a separate check-in mechanism and stays nil here.
type Registration struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	USN         string     `json:"usn"`
	PhoneNumber string     `json:"phone_number"`
	AttendedAt  *time.Time `json:"attended_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RegistrationStatus answers "is this user registered for that event".
type RegistrationStatus struct {
	IsRegistered bool          `json:"is_registered"`
	Registration *Registration `json:"registration"`
}

// EventStatistics is the derived view computed for an event's creator.
// RegistrationsByDate maps an en-US short date (M/D/YYYY) to the number of
// registrations created that day.
type EventStatistics struct {
	Event               Event          `json:"event"`
	TotalRegistered     int            `json:"total_registered"`
	MaxParticipants     int            `json:"max_participants"`
	RegistrationRate    float64        `json:"registration_rate"`
	AvailableSpots      *int           `json:"available_spots"` // nil = unbounded
	RegistrationsByDate map[string]int `json:"registrations_by_date"`
	Registrations       []Registration `json:"registrations"`
}
