package reservationclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/psingh4854/Hotel-Booking-System/pkg/tracing"
)

// Client calls the reservation service to clean up a removed hotel's
// bookings. The caller treats every failure as non-fatal.
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

func (c *Client) DeleteByHotel(ctx context.Context, hotelID string) error {
	url := fmt.Sprintf("%s/reservations/hotel/%s", c.baseURL, hotelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	tracing.InjectHTTP(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete reservations for hotel %s: status %d", hotelID, resp.StatusCode)
	}
	return nil
}
