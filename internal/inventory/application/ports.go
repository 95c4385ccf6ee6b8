package application

import (
	"context"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

type InventoryRepository interface {
	Create(ctx context.Context, inv domain.HotelInventory) error
	Get(ctx context.Context, hotelID string) (domain.HotelInventory, error)
	// TryReserve decrements the class counter iff it covers rooms, as one
	// atomic step with respect to concurrent reserves and releases on the
	// same hotel. Returns false without change when stock is short.
	TryReserve(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) (bool, error)
	// Release increments the class counter, clamped to the class total.
	Release(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) error
	Delete(ctx context.Context, hotelID string) error
}

// ReservationCleaner removes a deleted hotel's reservations, best effort.
type ReservationCleaner interface {
	DeleteByHotel(ctx context.Context, hotelID string) error
}
