package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/psingh4854/Hotel-Booking-System/internal/payment/domain"
	"github.com/psingh4854/Hotel-Booking-System/pkg/tracing"
)

// Service runs the mock gateway. A declined payment is a normal outcome:
// it is persisted as FAILED and returned without error, so callers can
// show the verdict instead of a failure page.
type Service struct {
	log          *slog.Logger
	repo         PaymentRepository
	reservations ReservationClient
	now          func() time.Time
}

func NewService(log *slog.Logger, repo PaymentRepository, reservations ReservationClient) *Service {
	return &Service{log: log, repo: repo, reservations: reservations, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type ProcessInput struct {
	ReservationID string
	UserID        string
	Amount        float64
	Method        domain.Method

	CardNumber     string
	CardHolderName string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	UPIID          string
	BankName       string
}

// Process validates the details, persists the verdict and, on success,
// tries to confirm the reservation. The confirm call is best effort:
// if it fails the payment stays SUCCESS and the gap is logged, leaving
// the reservation PENDING until someone confirms it again.
func (s *Service) Process(ctx context.Context, in ProcessInput) (domain.Payment, error) {
	now := s.now()
	p := domain.NewPayment(uuid.NewString(), in.ReservationID, in.UserID, in.Amount, in.Method, now)
	p.CardNumber = in.CardNumber
	p.CardHolderName = in.CardHolderName
	p.ExpiryMonth = in.ExpiryMonth
	p.ExpiryYear = in.ExpiryYear
	p.CVV = in.CVV
	p.UPIID = in.UPIID
	p.BankName = in.BankName

	p.MarkOutcome(p.ValidDetails(), now)

	payload, _ := json.Marshal(domain.PaymentProcessed{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
	})
	if err := s.repo.SaveWithOutbox(ctx, p, "PaymentProcessed", payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Payment{}, err
	}

	if p.Status == domain.StatusSuccess {
		if err := s.reservations.Confirm(ctx, p.ReservationID); err != nil {
			s.log.Error("reservation confirm failed after successful payment",
				"payment_id", p.ID, "reservation_id", p.ReservationID, "err", err)
		}
	}

	s.log.Info("payment processed", "payment_id", p.ID, "reservation_id", p.ReservationID, "status", p.Status)
	return p, nil
}

// Refund flips a SUCCESS payment to REFUNDED. The refund amount itself
// lives on the reservation; this only settles the payment record.
func (s *Service) Refund(ctx context.Context, id string) (domain.Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if err := p.Refund(s.now()); err != nil {
		return domain.Payment{}, err
	}

	payload, _ := json.Marshal(domain.PaymentRefunded{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
	})
	if err := s.repo.SaveWithOutbox(ctx, p, "PaymentRefunded", payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Payment{}, err
	}
	s.log.Info("payment refunded", "payment_id", p.ID)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByTransactionID(ctx context.Context, txnID string) (domain.Payment, error) {
	return s.repo.GetByTransactionID(ctx, txnID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	return s.repo.ListByReservation(ctx, reservationID)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Payment, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
