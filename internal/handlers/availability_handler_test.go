package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	availabilityuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

type stubQuery struct {
	slots []availability.Slot
	err   error
	got   availabilityuc.Input
}

func (s *stubQuery) Execute(_ context.Context, in availabilityuc.Input) ([]availability.Slot, error) {
	s.got = in
	return s.slots, s.err
}

func availabilityRouter(q AvailabilityQuery) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stylists/:id/availability", NewAvailabilityHandler(q, zap.NewNop()).Get)
	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAvailabilityHandler_OK(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	start := time.Date(2026, 3, 11, 9, 0, 0, 0, loc)

	q := &stubQuery{slots: []availability.Slot{{Start: start, End: start.Add(30 * time.Minute)}}}
	w := doGet(availabilityRouter(q), "/stylists/3/availability?service_id=5&date=2026-03-11")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"date": "2026-03-11",
		"stylist_id": 3,
		"service_id": 5,
		"slots": [{"start": "2026-03-11T09:00:00-03:00", "end": "2026-03-11T09:30:00-03:00"}]
	}`, w.Body.String())

	assert.Equal(t, uint(3), q.got.StylistID)
	assert.Equal(t, uint(5), q.got.ServiceID)
	assert.Equal(t, 11, q.got.Date.Day())
}

func TestAvailabilityHandler_EmptySlotsIsArray(t *testing.T) {
	w := doGet(availabilityRouter(&stubQuery{slots: []availability.Slot{}}), "/stylists/3/availability?service_id=5&date=2026-03-11")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["slots"])
}

func TestAvailabilityHandler_BadInput(t *testing.T) {
	r := availabilityRouter(&stubQuery{})

	for _, path := range []string{
		"/stylists/abc/availability?service_id=5&date=2026-03-11",
		"/stylists/3/availability?date=2026-03-11",
		"/stylists/3/availability?service_id=5",
		"/stylists/3/availability?service_id=5&date=11-03-2026",
	} {
		assert.Equal(t, http.StatusBadRequest, doGet(r, path).Code, path)
	}
}

func TestAvailabilityHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("load: %w", availability.ErrStylistNotFound), http.StatusNotFound, "stylist_not_found"},
		{availability.ErrServiceNotFound, http.StatusNotFound, "service_not_found"},
		{availability.ErrBranchNotFound, http.StatusNotFound, "branch_not_found"},
		{fmt.Errorf("%w: bad", availability.ErrInvalidParameter), http.StatusBadRequest, "invalid_parameter"},
		{&availability.ScheduleError{BranchID: 1, Category: availability.CategoryWeekday}, http.StatusInternalServerError, "invalid_branch_schedule"},
		{httperr.ErrBusiness("time_conflict"), http.StatusConflict, "time_conflict"},
		{httperr.ErrBusiness("appointment_not_found"), http.StatusNotFound, "appointment_not_found"},
		{httperr.ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{fmt.Errorf("driver: connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := doGet(availabilityRouter(&stubQuery{err: tc.err}), "/stylists/3/availability?service_id=5&date=2026-03-11")

		assert.Equal(t, tc.status, w.Code, tc.code)

		var body httperr.HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
	}
}
