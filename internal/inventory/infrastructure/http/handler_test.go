package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/infrastructure/memory"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	svc := application.NewService(log, memory.NewRepository(), nil)
	return NewHandler(log, svc).Routes()
}

func registerHotel(t *testing.T, h http.Handler, hotelID string, ac, nonAC int) {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"hotelId": hotelID, "totalAcRooms": ac, "totalNonAcRooms": nonAC,
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hotels", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCheckRoomAvailabilityEndpoint(t *testing.T) {
	h := newTestHandler(t)
	registerHotel(t, h, "h1", 10, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/hotels/h1/room-availability?roomType=ac&numberOfRooms=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["available"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/hotels/h1/room-availability?roomType=AC&numberOfRooms=11", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp["available"])
}

func TestUpdateRoomAvailabilityReserveAndRelease(t *testing.T) {
	h := newTestHandler(t)
	registerHotel(t, h, "h1", 10, 0)

	reserve := func(n int) map[string]bool {
		rec := httptest.NewRecorder()
		url := fmt.Sprintf("/hotels/h1/update-room-availability?roomType=AC&numberOfRooms=%d&isReservation=true", n)
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	assert.True(t, reserve(3)["success"])
	// 7 left; a reserve of 8 is rejected without touching the counter.
	assert.False(t, reserve(8)["success"])

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotels/h1", nil))
	var inv inventoryResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	assert.Equal(t, 7, inv.AvailableACRooms)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/hotels/h1/update-room-availability?roomType=AC&numberOfRooms=3&isReservation=false", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownHotelAndBadRoomType(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/hotels/ghost/room-availability?roomType=AC&numberOfRooms=1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	registerHotel(t, h, "h1", 1, 1)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/hotels/h1/room-availability?roomType=SUITE&numberOfRooms=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
