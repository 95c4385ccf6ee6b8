package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidRefundState = errors.New("only successful payments can be refunded")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSuccess  Status = "SUCCESS"
	StatusFailed   Status = "FAILED"
	StatusRefunded Status = "REFUNDED"
)

type Method string

const (
	MethodCreditCard Method = "CREDIT_CARD"
	MethodDebitCard  Method = "DEBIT_CARD"
	MethodUPI        Method = "UPI"
	MethodNetBanking Method = "NET_BANKING"
)

type Payment struct {
	ID            string
	ReservationID string
	UserID        string
	Amount        float64
	Method        Method

	CardNumber     string
	CardHolderName string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	UPIID          string
	BankName       string

	Status        Status
	TransactionID string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPayment(id, reservationID, userID string, amount float64, method Method, now time.Time) Payment {
	return Payment{
		ID:            id,
		ReservationID: reservationID,
		UserID:        userID,
		Amount:        amount,
		Method:        method,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValidDetails runs the mock gateway checks for the payment's method.
// A false result is a declined payment, not an error. Methods without
// dedicated checks (cash on arrival, wallets, ...) only need a positive
// amount; the method spelling is case-insensitive.
func (p Payment) ValidDetails() bool {
	if p.Amount <= 0 {
		return false
	}
	switch Method(strings.ToUpper(string(p.Method))) {
	case MethodCreditCard, MethodDebitCard:
		return validCard(p)
	case MethodUPI:
		return strings.Contains(p.UPIID, "@")
	case MethodNetBanking:
		return strings.TrimSpace(p.BankName) != ""
	default:
		return true
	}
}

func validCard(p Payment) bool {
	if strings.TrimSpace(p.CardHolderName) == "" {
		return false
	}
	if p.ExpiryMonth == "" || p.ExpiryYear == "" {
		return false
	}
	if len(p.CVV) < 3 {
		return false
	}
	return digitCount(p.CardNumber) >= 10
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// MarkOutcome settles the gateway verdict on a pending payment.
func (p *Payment) MarkOutcome(valid bool, now time.Time) {
	if valid {
		p.Status = StatusSuccess
		p.TransactionID = NewTransactionID()
		p.Description = "Payment processed successfully"
	} else {
		p.Status = StatusFailed
		p.Description = "Invalid payment details"
	}
	p.UpdatedAt = now
}

// Refund is only legal from SUCCESS; everything else is rejected.
func (p *Payment) Refund(now time.Time) error {
	if p.Status != StatusSuccess {
		return ErrInvalidRefundState
	}
	p.Status = StatusRefunded
	p.Description = "Payment refunded"
	p.UpdatedAt = now
	return nil
}

// NewTransactionID produces references like "TXN_3F2A9C1B".
func NewTransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN_" + strings.ToUpper(raw[:8])
}
