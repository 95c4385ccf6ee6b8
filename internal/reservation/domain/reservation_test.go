package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

func validReservation(t *testing.T) Reservation {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r, err := NewReservation("r1", "u1", "h1", invdomain.RoomClassAC, 2,
		now.AddDate(0, 0, 10), now.AddDate(0, 0, 12), 4, 4000.0, now)
	require.NoError(t, err)
	return r
}

func TestNewReservationDefaults(t *testing.T) {
	r := validReservation(t)
	assert.Equal(t, StatusPending, r.Status)
	assert.Zero(t, r.RefundedAmount)
}

func TestNewReservationValidation(t *testing.T) {
	now := time.Now().UTC()
	checkIn, checkOut := now.AddDate(0, 0, 5), now.AddDate(0, 0, 7)

	_, err := NewReservation("r1", "u1", "h1", invdomain.RoomClassAC, 0, checkIn, checkOut, 2, 100, now)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	_, err = NewReservation("r1", "u1", "h1", invdomain.RoomClassAC, 1, checkIn, checkOut, 0, 100, now)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	_, err = NewReservation("r1", "u1", "h1", invdomain.RoomClassAC, 1, checkIn, checkOut, 2, 0, now)
	assert.ErrorIs(t, err, ErrInvalidReservation)

	_, err = NewReservation("r1", "u1", "h1", invdomain.RoomClassAC, 1, checkOut, checkIn, 2, 100, now)
	assert.ErrorIs(t, err, ErrInvalidReservation)
}

func TestStatusTransitionTable(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusConfirmed.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
}

func TestConfirmIsNotIdempotent(t *testing.T) {
	r := validReservation(t)
	now := time.Now().UTC()

	require.NoError(t, r.Confirm(now))
	assert.Equal(t, StatusConfirmed, r.Status)

	err := r.Confirm(now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelRecordsRefundAndIsTerminal(t *testing.T) {
	r := validReservation(t)
	now := time.Now().UTC()

	require.NoError(t, r.Cancel(3000.0, now))
	assert.Equal(t, StatusCancelled, r.Status)
	assert.Equal(t, 3000.0, r.RefundedAmount)

	assert.ErrorIs(t, r.Cancel(0, now), ErrInvalidTransition)
	assert.ErrorIs(t, r.Confirm(now), ErrInvalidTransition)
}
