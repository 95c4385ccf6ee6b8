package domain

// Outbox payloads published on the payments topic.

type PaymentProcessed struct {
	PaymentID     string  `json:"paymentId"`
	ReservationID string  `json:"reservationId"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId,omitempty"`
}

type PaymentRefunded struct {
	PaymentID     string  `json:"paymentId"`
	ReservationID string  `json:"reservationId"`
	Amount        float64 `json:"amount"`
}
