package domain

import (
	"errors"
	"fmt"
	"time"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInventoryExhausted  = errors.New("insufficient rooms available")
	ErrReservationFailed   = errors.New("room reservation failed")
	ErrInvalidTransition   = errors.New("invalid reservation state transition")
	ErrInvalidReservation  = errors.New("invalid reservation")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the closed state machine: confirm only from PENDING,
// cancel from PENDING or CONFIRMED, nothing leaves CANCELLED.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID             string
	UserID         string
	HotelID        string
	RoomType       invdomain.RoomClass
	NumberOfRooms  int
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
	TotalCost      float64
	RefundedAmount float64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewReservation builds a PENDING reservation. Callers persist it only
// after the inventory decrement succeeded.
func NewReservation(id, userID, hotelID string, roomType invdomain.RoomClass, rooms int,
	checkIn, checkOut time.Time, guests int, totalCost float64, now time.Time) (Reservation, error) {

	r := Reservation{
		ID:             id,
		UserID:         userID,
		HotelID:        hotelID,
		RoomType:       roomType,
		NumberOfRooms:  rooms,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: guests,
		TotalCost:      totalCost,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.validate(); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

func (r Reservation) validate() error {
	switch {
	case r.UserID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidReservation)
	case r.HotelID == "":
		return fmt.Errorf("%w: hotel id is required", ErrInvalidReservation)
	case r.NumberOfRooms < 1:
		return fmt.Errorf("%w: number of rooms must be at least 1", ErrInvalidReservation)
	case r.NumberOfGuests < 1:
		return fmt.Errorf("%w: number of guests must be at least 1", ErrInvalidReservation)
	case r.TotalCost <= 0:
		return fmt.Errorf("%w: total cost must be greater than 0", ErrInvalidReservation)
	case !r.CheckOutDate.After(r.CheckInDate):
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidReservation)
	}
	return nil
}

// Confirm moves PENDING to CONFIRMED. It is deliberately not idempotent:
// confirming an already confirmed or cancelled reservation fails.
func (r *Reservation) Confirm(now time.Time) error {
	if !r.Status.CanTransitionTo(StatusConfirmed) {
		return fmt.Errorf("%w: cannot confirm reservation with status %s", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now
	return nil
}

// Cancel moves the reservation to CANCELLED and records the refund. The
// inventory release is the caller's concern and may have failed.
func (r *Reservation) Cancel(refund float64, now time.Time) error {
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel reservation with status %s", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusCancelled
	r.RefundedAmount = refund
	r.UpdatedAt = now
	return nil
}
