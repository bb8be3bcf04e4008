package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-events/internal/domain"
)

// StatisticsWorkflow produces the creator-facing metrics view.
type StatisticsWorkflow interface {
	Get(ctx context.Context, userID, eventID string) (*domain.EventStatistics, error)
}

type StatisticsHandler struct {
	Stats StatisticsWorkflow
}

func NewStatisticsHandler(stats StatisticsWorkflow) *StatisticsHandler {
	if stats == nil {
		panic("nil service passed to NewStatisticsHandler")
	}
	return &StatisticsHandler{Stats: stats}
}

// Get handles GET /v1/events/:id/statistics. Creator only.
func (h *StatisticsHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := strings.TrimSpace(c.Param("id"))
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	stats, err := h.Stats.Get(c.Request().Context(), userID, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
