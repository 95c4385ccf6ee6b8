package application

import (
	"context"
	"log/slog"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

// Service owns the room counters. It is the single point of truth for
// availability; the reservation service only ever talks to it over RPC.
type Service struct {
	log          *slog.Logger
	repo         InventoryRepository
	reservations ReservationCleaner
}

func NewService(log *slog.Logger, repo InventoryRepository, reservations ReservationCleaner) *Service {
	return &Service{log: log, repo: repo, reservations: reservations}
}

// Register creates the counters for a newly added hotel, fully available.
func (s *Service) Register(ctx context.Context, hotelID string, totalAC, totalNonAC int) (domain.HotelInventory, error) {
	inv, err := domain.NewHotelInventory(hotelID, totalAC, totalNonAC)
	if err != nil {
		return domain.HotelInventory{}, err
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return domain.HotelInventory{}, err
	}
	s.log.Info("hotel inventory registered", "hotel_id", hotelID, "ac", totalAC, "non_ac", totalNonAC)
	return inv, nil
}

func (s *Service) Get(ctx context.Context, hotelID string) (domain.HotelInventory, error) {
	return s.repo.Get(ctx, hotelID)
}

// CheckAvailability reports whether the hotel still has rooms of the
// class in the requested quantity. A later reserve may still lose the
// race; only the reserve itself is authoritative.
func (s *Service) CheckAvailability(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) (bool, error) {
	inv, err := s.repo.Get(ctx, hotelID)
	if err != nil {
		return false, err
	}
	return inv.CanReserve(class, rooms), nil
}

func (s *Service) Reserve(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) (bool, error) {
	ok, err := s.repo.TryReserve(ctx, hotelID, class, rooms)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.Info("reserve rejected, insufficient rooms", "hotel_id", hotelID, "class", class, "rooms", rooms)
	}
	return ok, nil
}

func (s *Service) Release(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) error {
	return s.repo.Release(ctx, hotelID, class, rooms)
}

// Remove deletes a hotel's counters when the hotel leaves the catalog.
// The hotel's reservations are cleaned up first; that call is best
// effort and its failure never blocks the removal.
func (s *Service) Remove(ctx context.Context, hotelID string) error {
	if _, err := s.repo.Get(ctx, hotelID); err != nil {
		return err
	}
	if s.reservations != nil {
		if err := s.reservations.DeleteByHotel(ctx, hotelID); err != nil {
			s.log.Error("reservation cleanup failed for removed hotel", "hotel_id", hotelID, "err", err)
		}
	}
	return s.repo.Delete(ctx, hotelID)
}
