// Package ports declares the narrow interfaces the workflow services
// depend on. Production wiring satisfies them with the repository, cache,
// media and queue packages; tests substitute in-memory fakes.
package ports

import (
	"context"

	"github.com/iliyamo/campus-events/internal/domain"
)

// EventRepo is the persistence surface for events.
type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByCreator(ctx context.Context, creatorID string, limit int) ([]domain.Event, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// MediaUploader forwards raw image bytes to the external hosting service
// and returns the hosted URL.
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, mimeType string) (string, error)
}
