package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invapp "github.com/psingh4854/Hotel-Booking-System/internal/inventory/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/infrastructure/memory"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/domain"
)

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]domain.Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]domain.Reservation{}}
}

func (f *fakeRepo) SaveWithOutbox(_ context.Context, r domain.Reservation, _ string, _ []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[r.ID] = r
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]domain.Reservation, error) {
	return f.filter(func(r domain.Reservation) bool { return r.UserID == userID }), nil
}

func (f *fakeRepo) ListByHotel(_ context.Context, hotelID string) ([]domain.Reservation, error) {
	return f.filter(func(r domain.Reservation) bool { return r.HotelID == hotelID }), nil
}

func (f *fakeRepo) ListByStatus(_ context.Context, status domain.Status) ([]domain.Reservation, error) {
	return f.filter(func(r domain.Reservation) bool { return r.Status == status }), nil
}

func (f *fakeRepo) DeleteByHotel(_ context.Context, hotelID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, r := range f.items {
		if r.HotelID == hotelID {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) filter(keep func(domain.Reservation) bool) []domain.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reservation
	for _, r := range f.items {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// The handler runs against the real reservation service wired to an
// in-process inventory service, so conflicts come from real counters.
func newServer(t *testing.T) (*httptest.Server, *invapp.Service) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	inv := invapp.NewService(log, memory.NewRepository(), nil)
	svc := application.NewService(log, newFakeRepo(), inv)
	srv := httptest.NewServer(NewHandler(log, svc).Routes())
	t.Cleanup(srv.Close)
	return srv, inv
}

func createBody() []byte {
	b, _ := json.Marshal(map[string]any{
		"userId":         "u1",
		"hotelId":        "h1",
		"roomType":       "AC",
		"numberOfRooms":  2,
		"checkInDate":    "2026-12-20",
		"checkOutDate":   "2026-12-23",
		"numberOfGuests": 4,
		"totalCost":      4000.0,
	})
	return b
}

func postJSON(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateConfirmCancelFlow(t *testing.T) {
	srv, inv := newServer(t)
	_, err := inv.Register(context.Background(), "h1", 10, 0)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/reservations", createBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created reservationResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "PENDING", created.Status)
	assert.NotEmpty(t, created.ReservationID)

	snap, err := inv.Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 8, snap.AvailableACRooms)

	resp = postJSON(t, srv.URL+"/reservations/"+created.ReservationID+"/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmed reservationResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&confirmed))
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	resp = postJSON(t, srv.URL+"/reservations/"+created.ReservationID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled reservationResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cancelled))
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.Empty(t, cancelled.ReleaseWarning)

	snap, err = inv.Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 10, snap.AvailableACRooms)
}

func TestCreateUnknownHotelIs404(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/reservations", createBody())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateExhaustedIs409(t *testing.T) {
	srv, inv := newServer(t)
	_, err := inv.Register(context.Background(), "h1", 1, 0)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/reservations", createBody())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateRejectsBadInput(t *testing.T) {
	srv, inv := newServer(t)
	_, err := inv.Register(context.Background(), "h1", 10, 0)
	require.NoError(t, err)

	cases := map[string]map[string]any{
		"bad room type":  {"roomType": "DELUXE"},
		"bad check-in":   {"checkInDate": "20-12-2026"},
		"checkout first": {"checkInDate": "2026-12-23", "checkOutDate": "2026-12-20"},
	}
	for name, override := range cases {
		t.Run(name, func(t *testing.T) {
			var body map[string]any
			require.NoError(t, json.Unmarshal(createBody(), &body))
			for k, v := range override {
				body[k] = v
			}
			b, _ := json.Marshal(body)
			resp := postJSON(t, srv.URL+"/reservations", b)
			assert.Contains(t, []int{http.StatusBadRequest, http.StatusUnprocessableEntity}, resp.StatusCode)
		})
	}
}

func TestConfirmUnknownIs404AndCancelledIs409(t *testing.T) {
	srv, inv := newServer(t)
	_, err := inv.Register(context.Background(), "h1", 10, 0)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/reservations/ghost/confirm", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/reservations", createBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created reservationResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = postJSON(t, srv.URL+"/reservations/"+created.ReservationID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/reservations/"+created.ReservationID+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListAndDeleteByHotel(t *testing.T) {
	srv, inv := newServer(t)
	_, err := inv.Register(context.Background(), "h1", 10, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, srv.URL+"/reservations", createBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/reservations?hotelId=h1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []reservationResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Len(t, listed, 3)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/reservations/hotel/h1", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	var report deleteByHotelResp
	require.NoError(t, json.NewDecoder(delResp.Body).Decode(&report))
	assert.Equal(t, 3, report.Deleted)
	assert.Empty(t, report.FailedReleases)

	snap, err := inv.Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 10, snap.AvailableACRooms)
}

func TestListRequiresAFilter(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Get(srv.URL + "/reservations")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
