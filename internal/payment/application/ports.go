package application

import (
	"context"

	"github.com/psingh4854/Hotel-Booking-System/internal/payment/domain"
)

type PaymentRepository interface {
	SaveWithOutbox(ctx context.Context, p domain.Payment, eventType string, payload []byte, traceparent string) error
	Get(ctx context.Context, id string) (domain.Payment, error)
	GetByTransactionID(ctx context.Context, txnID string) (domain.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

// ReservationClient confirms a reservation after its payment succeeds.
type ReservationClient interface {
	Confirm(ctx context.Context, reservationID string) error
}
