package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/domain"
)

// stubEvents satisfies EventWorkflow with canned responses.
type stubEvents struct {
	event *domain.Event
	err   error
}

func (s *stubEvents) Create(context.Context, string, domain.EventInput) (*domain.Event, error) {
	return s.event, s.err
}
func (s *stubEvents) Get(context.Context, string) (*domain.Event, error) { return s.event, s.err }
func (s *stubEvents) ListMine(context.Context, string) ([]domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Event{*s.event}, nil
}
func (s *stubEvents) ListPublic(context.Context) ([]domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Event{*s.event}, nil
}
func (s *stubEvents) Update(context.Context, string, string, domain.EventInput) (*domain.Event, error) {
	return s.event, s.err
}
func (s *stubEvents) Delete(context.Context, string, string) error { return s.err }

type stubRegistrations struct {
	reg    *domain.Registration
	status *domain.RegistrationStatus
	err    error
}

func (s *stubRegistrations) Register(context.Context, string, string, string, string) (*domain.Registration, error) {
	return s.reg, s.err
}
func (s *stubRegistrations) Status(context.Context, string, string) (*domain.RegistrationStatus, error) {
	return s.status, s.err
}
func (s *stubRegistrations) ListForEvent(context.Context, string, string) ([]domain.Registration, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Registration{*s.reg}, nil
}

type stubStats struct {
	stats *domain.EventStatistics
	err   error
}

func (s *stubStats) Get(context.Context, string, string) (*domain.EventStatistics, error) {
	return s.stats, s.err
}

// doRequest runs a handler through Echo with an optional authenticated user
// and returns the recorder.
func doRequest(t *testing.T, method, target, body, userID string, paramID string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	require.NoError(t, h(c))
	return rec
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out["error"]
}

func TestEventHandlerCreate(t *testing.T) {
	creator := "u1"
	h := NewEventHandler(&stubEvents{event: &domain.Event{ID: "e1", CreatorID: &creator, Name: "Expo"}})

	rec := doRequest(t, http.MethodPost, "/v1/events", `{"event_name":"Expo"}`, "u1", "", h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Expo"`)
}

func TestEventHandlerCreateUnauthenticated(t *testing.T) {
	h := NewEventHandler(&stubEvents{})
	rec := doRequest(t, http.MethodPost, "/v1/events", `{}`, "", "", h.Create)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventHandlerValidationError(t *testing.T) {
	h := NewEventHandler(&stubEvents{err: fmt.Errorf("%w: event name is required", domain.ErrValidation)})
	rec := doRequest(t, http.MethodPost, "/v1/events", `{}`, "u1", "", h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "event name is required", errBody(t, rec))
}

func TestEventHandlerGetNotFound(t *testing.T) {
	h := NewEventHandler(&stubEvents{err: fmt.Errorf("%w: event e404", domain.ErrNotFound)})
	rec := doRequest(t, http.MethodGet, "/v1/events/e404", "", "", "e404", h.Get)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventHandlerUpdateForbidden(t *testing.T) {
	h := NewEventHandler(&stubEvents{err: fmt.Errorf("%w: you don't have permission to edit this event", domain.ErrForbidden)})
	rec := doRequest(t, http.MethodPut, "/v1/events/e1", `{}`, "intruder", "e1", h.Update)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "you don't have permission to edit this event", errBody(t, rec))
}

func TestEventHandlerInternalErrorIsGeneric(t *testing.T) {
	h := NewEventHandler(&stubEvents{err: fmt.Errorf("dial tcp 10.0.0.3:3306: connection refused")})
	rec := doRequest(t, http.MethodGet, "/v1/events/e1", "", "", "e1", h.Get)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", errBody(t, rec))
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestEventHandlerDelete(t *testing.T) {
	h := NewEventHandler(&stubEvents{})
	rec := doRequest(t, http.MethodDelete, "/v1/events/e1", "", "u1", "e1", h.Delete)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegistrationHandlerRegister(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrations{reg: &domain.Registration{ID: "r1", EventID: "e1"}})
	rec := doRequest(t, http.MethodPost, "/v1/events/e1/register",
		`{"usn":"1MS21CS001","phoneNumber":"9876543210"}`, "u1", "e1", h.Register)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"r1"`)
}

func TestRegistrationHandlerConflict(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrations{err: fmt.Errorf("%w: already registered for this event", domain.ErrConflict)})
	rec := doRequest(t, http.MethodPost, "/v1/events/e1/register", `{}`, "u1", "e1", h.Register)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already registered for this event", errBody(t, rec))
}

func TestRegistrationHandlerStatus(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrations{status: &domain.RegistrationStatus{IsRegistered: true}})
	rec := doRequest(t, http.MethodGet, "/v1/events/e1/registration", "", "u1", "e1", h.Status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_registered":true`)
}

func TestRegistrationHandlerListForbidden(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrations{err: fmt.Errorf("%w: you don't have permission to view registered users for this event", domain.ErrForbidden)})
	rec := doRequest(t, http.MethodGet, "/v1/events/e1/registrations", "", "u2", "e1", h.ListForEvent)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatisticsHandlerGet(t *testing.T) {
	h := NewStatisticsHandler(&stubStats{stats: &domain.EventStatistics{TotalRegistered: 7}})
	rec := doRequest(t, http.MethodGet, "/v1/events/e1/statistics", "", "u1", "e1", h.Get)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_registered":7`)
}

func TestStatisticsHandlerMissingEventID(t *testing.T) {
	h := NewStatisticsHandler(&stubStats{})
	rec := doRequest(t, http.MethodGet, "/v1/events//statistics", "", "u1", "", h.Get)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
