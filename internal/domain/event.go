package domain

import "time"

// DefaultFormLink is stored on events whose creator did not supply an
// external form link.
const DefaultFormLink = "https://forms.gle/CdFuxvgp4uyhmKNH7"

// Event is a single plannable occurrence. CreatorID is nullable only
// because removing the creator cascades through the database; every event
// created through the service carries its creator.
type Event struct {
	ID              string     `json:"id"`
	CreatorID       *string    `json:"creator_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Venue           string     `json:"venue"`
	EventDate       time.Time  `json:"date_of_event"`
	StartTime       string     `json:"event_start_time"`
	EndTime         string     `json:"event_end_time"`
	RegistrationEnd *time.Time `json:"registration_end"`
	MaxParticipants *int       `json:"max_participants"` // nil = unlimited
	ClubName        string     `json:"club_name"`
	PosterURL       string     `json:"event_poster"`
	LogoURL         string     `json:"logo"`
	FormLink        string     `json:"form_link"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OwnedBy reports whether the event was created by the given user.
func (e *Event) OwnedBy(userID string) bool {
	return e.CreatorID != nil && *e.CreatorID == userID
}

// ImagePayload carries raw image bytes and their MIME type on the way to
// the media service. The platform never inspects the content.
type ImagePayload struct {
	Bytes []byte `json:"bytes"`
	Type  string `json:"type"`
}

// EventInput is the textual form of an event as submitted by a creator.
// Dates arrive as "2006-01-02" strings and MaxParticipants as free text;
// the event service coerces and validates both.
type EventInput struct {
	Name            string        `json:"event_name"`
	Description     string        `json:"description"`
	Venue           string        `json:"venue"`
	EventDate       string        `json:"date_of_event"`
	StartTime       string        `json:"event_start_time"`
	EndTime         string        `json:"event_end_time"`
	RegistrationEnd string        `json:"registration_end"`
	MaxParticipants string        `json:"max_participants"`
	ClubName        string        `json:"club_name"`
	FormLink        string        `json:"form_link"`
	Poster          *ImagePayload `json:"event_poster,omitempty"`
	Logo            *ImagePayload `json:"event_logo,omitempty"`
}
