package reservationclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/psingh4854/Hotel-Booking-System/pkg/tracing"
)

// Client pushes the confirm call to the reservation service once a
// payment succeeds.
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

func (c *Client) Confirm(ctx context.Context, reservationID string) error {
	u := fmt.Sprintf("%s/reservations/%s/confirm", c.baseURL, url.PathEscape(reservationID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
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
		return fmt.Errorf("reservation service returned status %d", resp.StatusCode)
	}
	return nil
}
