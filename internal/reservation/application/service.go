package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/domain"
	"github.com/psingh4854/Hotel-Booking-System/pkg/tracing"
)

// Service coordinates reservations against the hotel service's room
// counters. Inventory is reached over RPC only; there is no shared
// transaction, so compensations are best effort by design.
type Service struct {
	log  *slog.Logger
	repo ReservationRepository
	inv  InventoryClient
	now  func() time.Time
}

func NewService(log *slog.Logger, repo ReservationRepository, inv InventoryClient) *Service {
	return &Service{log: log, repo: repo, inv: inv, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock fixes the service's notion of "today"; tests use it to pin
// refund tiers.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateInput struct {
	UserID         string
	HotelID        string
	RoomType       invdomain.RoomClass
	NumberOfRooms  int
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
	TotalCost      float64
}

// Create checks availability and reserves rooms as two separate RPCs:
// the pre-check keeps obviously hopeless requests away from the counter,
// and a reserve that loses the race in between fails the whole call.
// Nothing is rolled back in that case because nothing was decremented.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Reservation, error) {
	// Validate before touching the counters; a rejected input must not
	// leave a decrement behind.
	r, err := domain.NewReservation(uuid.NewString(), in.UserID, in.HotelID, in.RoomType,
		in.NumberOfRooms, in.CheckInDate, in.CheckOutDate, in.NumberOfGuests, in.TotalCost, s.now())
	if err != nil {
		return domain.Reservation{}, err
	}

	available, err := s.inv.CheckAvailability(ctx, in.HotelID, in.RoomType, in.NumberOfRooms)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("availability check: %w", err)
	}
	if !available {
		return domain.Reservation{}, domain.ErrInventoryExhausted
	}

	reserved, err := s.inv.Reserve(ctx, in.HotelID, in.RoomType, in.NumberOfRooms)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("room reserve: %w", err)
	}
	if !reserved {
		return domain.Reservation{}, domain.ErrReservationFailed
	}

	payload, _ := json.Marshal(domain.ReservationCreated{
		ReservationID: r.ID,
		UserID:        r.UserID,
		HotelID:       r.HotelID,
		RoomType:      string(r.RoomType),
		NumberOfRooms: r.NumberOfRooms,
		TotalCost:     r.TotalCost,
	})
	if err := s.repo.SaveWithOutbox(ctx, r, "ReservationCreated", payload, tracing.Traceparent(ctx)); err != nil {
		// The decrement already happened and stays; the rooms leak until
		// an operator reconciles. Same gap as losing the release below.
		s.log.Error("reservation persist failed after inventory reserve",
			"hotel_id", r.HotelID, "rooms", r.NumberOfRooms, "err", err)
		return domain.Reservation{}, err
	}

	s.log.Info("reservation created", "reservation_id", r.ID, "hotel_id", r.HotelID, "rooms", r.NumberOfRooms)
	return r, nil
}

// Confirm moves a PENDING reservation to CONFIRMED. Called by the
// payment service after a successful charge.
func (s *Service) Confirm(ctx context.Context, id string) (domain.Reservation, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := r.Confirm(s.now()); err != nil {
		return domain.Reservation{}, err
	}

	payload, _ := json.Marshal(domain.ReservationConfirmed{ReservationID: r.ID})
	if err := s.repo.SaveWithOutbox(ctx, r, "ReservationConfirmed", payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Reservation{}, err
	}
	s.log.Info("reservation confirmed", "reservation_id", r.ID)
	return r, nil
}

// CancelResult reports the cancellation outcome. ReleaseWarning is set
// when the inventory restore failed; the reservation is CANCELLED and
// the refund recorded regardless.
type CancelResult struct {
	Reservation    domain.Reservation
	ReleaseWarning string
}

func (s *Service) Cancel(ctx context.Context, id string) (CancelResult, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return CancelResult{}, err
	}

	now := s.now()
	refund := domain.RefundAmount(r.TotalCost, domain.DaysUntilCheckIn(now, r.CheckInDate))

	var warning string
	if err := s.inv.Release(ctx, r.HotelID, r.RoomType, r.NumberOfRooms); err != nil {
		warning = fmt.Sprintf("room availability was not restored: %v", err)
		s.log.Error("inventory release failed on cancel",
			"reservation_id", r.ID, "hotel_id", r.HotelID, "rooms", r.NumberOfRooms, "err", err)
	}

	if err := r.Cancel(refund, now); err != nil {
		return CancelResult{}, err
	}

	payload, _ := json.Marshal(domain.ReservationCancelled{
		ReservationID:  r.ID,
		RefundedAmount: r.RefundedAmount,
		ReleaseFailed:  warning != "",
	})
	if err := s.repo.SaveWithOutbox(ctx, r, "ReservationCancelled", payload, tracing.Traceparent(ctx)); err != nil {
		return CancelResult{}, err
	}

	s.log.Info("reservation cancelled", "reservation_id", r.ID, "refund", r.RefundedAmount)
	return CancelResult{Reservation: r, ReleaseWarning: warning}, nil
}

// FailedRelease identifies one reservation whose rooms could not be
// restored during a bulk delete.
type FailedRelease struct {
	ReservationID string
	Err           error
}

type DeleteByHotelReport struct {
	Deleted        int
	FailedReleases []FailedRelease
}

// DeleteByHotel removes every reservation of a hotel leaving the
// catalog. Rooms of PENDING and CONFIRMED reservations are released one
// by one, best effort; failures are collected, never abort the deletion.
func (s *Service) DeleteByHotel(ctx context.Context, hotelID string) (DeleteByHotelReport, error) {
	reservations, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		return DeleteByHotelReport{}, err
	}

	var report DeleteByHotelReport
	for _, r := range reservations {
		if r.Status != domain.StatusPending && r.Status != domain.StatusConfirmed {
			continue
		}
		if err := s.inv.Release(ctx, r.HotelID, r.RoomType, r.NumberOfRooms); err != nil {
			s.log.Error("inventory release failed during hotel delete",
				"reservation_id", r.ID, "hotel_id", hotelID, "err", err)
			report.FailedReleases = append(report.FailedReleases, FailedRelease{ReservationID: r.ID, Err: err})
		}
	}

	deleted, err := s.repo.DeleteByHotel(ctx, hotelID)
	if err != nil {
		return report, err
	}
	report.Deleted = deleted
	s.log.Info("reservations deleted for hotel", "hotel_id", hotelID,
		"deleted", deleted, "failed_releases", len(report.FailedReleases))
	return report, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Reservation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByHotel(ctx context.Context, hotelID string) ([]domain.Reservation, error) {
	return s.repo.ListByHotel(ctx, hotelID)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Reservation, error) {
	return s.repo.ListByStatus(ctx, status)
}
