package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

// Repository keeps inventories in memory behind a single mutex, so the
// read-modify-write inside TryReserve is indivisible per store. Used in
// tests and local runs without Postgres.
type Repository struct {
	mu     sync.RWMutex
	hotels map[string]domain.HotelInventory
}

func NewRepository() *Repository {
	return &Repository{hotels: make(map[string]domain.HotelInventory)}
}

func (r *Repository) Create(_ context.Context, inv domain.HotelInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hotels[inv.HotelID]; ok {
		return fmt.Errorf("%w: hotel %s already registered", domain.ErrInvalidInventory, inv.HotelID)
	}
	r.hotels[inv.HotelID] = inv
	return nil
}

func (r *Repository) Get(_ context.Context, hotelID string) (domain.HotelInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.hotels[hotelID]
	if !ok {
		return domain.HotelInventory{}, domain.ErrHotelNotFound
	}
	return inv, nil
}

func (r *Repository) TryReserve(_ context.Context, hotelID string, class domain.RoomClass, rooms int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.hotels[hotelID]
	if !ok {
		return false, domain.ErrHotelNotFound
	}
	if !inv.Reserve(class, rooms) {
		return false, nil
	}
	r.hotels[hotelID] = inv
	return true, nil
}

func (r *Repository) Release(_ context.Context, hotelID string, class domain.RoomClass, rooms int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.hotels[hotelID]
	if !ok {
		return domain.ErrHotelNotFound
	}
	inv.Release(class, rooms)
	r.hotels[hotelID] = inv
	return nil
}

func (r *Repository) Delete(_ context.Context, hotelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hotels[hotelID]; !ok {
		return domain.ErrHotelNotFound
	}
	delete(r.hotels, hotelID)
	return nil
}
