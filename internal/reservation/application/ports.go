package application

import (
	"context"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/domain"
)

type ReservationRepository interface {
	// SaveWithOutbox upserts the reservation and appends the lifecycle
	// event in the same transaction.
	SaveWithOutbox(ctx context.Context, r domain.Reservation, eventType string, payload []byte, traceparent string) error
	Get(ctx context.Context, id string) (domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	ListByHotel(ctx context.Context, hotelID string) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Reservation, error)
	DeleteByHotel(ctx context.Context, hotelID string) (int, error)
}

// InventoryClient is the hotel service's room-counter RPC surface.
type InventoryClient interface {
	CheckAvailability(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) (bool, error)
	Reserve(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) (bool, error)
	Release(ctx context.Context, hotelID string, class invdomain.RoomClass, rooms int) error
}
