package hotelclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
	"github.com/psingh4854/Hotel-Booking-System/pkg/tracing"
)

// Client talks to the hotel service's room-counter endpoints. Every call
// is a single attempt with a bounded timeout; retries are the caller's
// decision, and the caller here never retries.
type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) CheckAvailability(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) (bool, error) {
	u := fmt.Sprintf("%s/hotels/%s/room-availability?%s", c.baseURL, url.PathEscape(hotelID), roomQuery(class, rooms))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	tracing.InjectHTTP(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, hotelID); err != nil {
		return false, err
	}
	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Available, nil
}

func (c *Client) Reserve(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) (bool, error) {
	return c.update(ctx, hotelID, class, rooms, true)
}

func (c *Client) Release(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) error {
	ok, err := c.update(ctx, hotelID, class, rooms, false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("release rejected for hotel %s", hotelID)
	}
	return nil
}

func (c *Client) update(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int, isReservation bool) (bool, error) {
	u := fmt.Sprintf("%s/hotels/%s/update-room-availability?%s&isReservation=%t",
		c.baseURL, url.PathEscape(hotelID), roomQuery(class, rooms), isReservation)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return false, err
	}
	tracing.InjectHTTP(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, hotelID); err != nil {
		return false, err
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Success, nil
}

func roomQuery(class invdomain.RoomClass, rooms int) string {
	q := url.Values{}
	q.Set("roomType", string(class))
	q.Set("numberOfRooms", strconv.Itoa(rooms))
	return q.Encode()
}

func checkStatus(resp *http.Response, hotelID string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("hotel %s: %w", hotelID, invdomain.ErrHotelNotFound)
	case resp.StatusCode >= 300:
		return fmt.Errorf("hotel service returned status %d", resp.StatusCode)
	}
	return nil
}
