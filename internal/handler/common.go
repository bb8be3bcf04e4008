package handler // handler defines http handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/domain"
)

// getUserID extracts the user_id injected by the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("invalid user_id in context")
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// Validation, not-found, forbidden and conflict messages are surfaced
// verbatim; anything else is logged and answered with a generic message so
// internal details never reach the caller.
func respondDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": stripSentinel(err, domain.ErrValidation)})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": stripSentinel(err, domain.ErrNotFound)})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": stripSentinel(err, domain.ErrForbidden)})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": stripSentinel(err, domain.ErrConflict)})
	default:
		log.Printf("handler: %s %s failed: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// stripSentinel removes the "validation error: " style prefix so the
// caller sees only the specific rule that failed. When the error is the
// bare sentinel, its own text is returned.
func stripSentinel(err error, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
