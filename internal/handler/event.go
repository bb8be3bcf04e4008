package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/domain"
)

// EventWorkflow is the slice of the event service the handler needs.
// Declaring it here lets handler tests substitute a fake.
type EventWorkflow interface {
	Create(ctx context.Context, creatorID string, in domain.EventInput) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	ListMine(ctx context.Context, creatorID string) ([]domain.Event, error)
	ListPublic(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, userID, eventID string, in domain.EventInput) (*domain.Event, error)
	Delete(ctx context.Context, userID, eventID string) error
}

// EventHandler exposes the ownership-gated event mutations and the cached
// read paths over HTTP.
type EventHandler struct {
	Events EventWorkflow
}

func NewEventHandler(events EventWorkflow) *EventHandler {
	if events == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

// Create handles POST /v1/events. Image payloads arrive base64-encoded in
// the JSON body and are forwarded to the media service by the workflow.
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var in domain.EventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, err := h.Events.Create(c.Request().Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// Get handles GET /v1/events/:id and returns one event.
func (h *EventHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.Get(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// ListMine handles GET /v1/events and returns the caller's newest events.
func (h *EventHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListMine(c.Request().Context(), userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// ListPublic handles GET /v1/events/public. No authentication required.
func (h *EventHandler) ListPublic(c echo.Context) error {
	events, err := h.Events.ListPublic(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// Update handles PUT /v1/events/:id. Only the creator may update.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var in domain.EventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e, err := h.Events.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/events/:id. Only the creator may delete;
// registrations cascade away with the event.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), userID, id); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
