package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/domain"
)

// RegistrationWorkflow is the slice of the registration service used by
// the handler; tests plug in a fake.
type RegistrationWorkflow interface {
	Register(ctx context.Context, userID, eventID, usn, phoneNumber string) (*domain.Registration, error)
	Status(ctx context.Context, userID, eventID string) (*domain.RegistrationStatus, error)
	ListForEvent(ctx context.Context, userID, eventID string) ([]domain.Registration, error)
}

type RegistrationHandler struct {
	Registrations RegistrationWorkflow
}

func NewRegistrationHandler(registrations RegistrationWorkflow) *RegistrationHandler {
	if registrations == nil {
		panic("nil service passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Registrations: registrations}
}

type registerEventReq struct {
	USN         string `json:"usn"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register handles POST /v1/events/:id/register. Name and email come from
// the caller's profile; only usn and phone number travel in the body.
func (h *RegistrationHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := strings.TrimSpace(c.Param("id"))
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req registerEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	reg, err := h.Registrations.Register(c.Request().Context(), userID, eventID, req.USN, req.PhoneNumber)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, reg)
}

// Status handles GET /v1/events/:id/registration and reports whether the
// caller is registered.
func (h *RegistrationHandler) Status(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := strings.TrimSpace(c.Param("id"))
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	status, err := h.Registrations.Status(c.Request().Context(), userID, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// ListForEvent handles GET /v1/events/:id/registrations. Creator only.
func (h *RegistrationHandler) ListForEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := strings.TrimSpace(c.Param("id"))
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	regs, err := h.Registrations.ListForEvent(c.Request().Context(), userID, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": regs})
}
