package domain

// Outbox event payloads. ReservationCancelled carries releaseFailed so
// operators can spot inventory drift left by a failed compensation.
type ReservationCreated struct {
	ReservationID string  `json:"reservationId"`
	UserID        string  `json:"userId"`
	HotelID       string  `json:"hotelId"`
	RoomType      string  `json:"roomType"`
	NumberOfRooms int     `json:"numberOfRooms"`
	TotalCost     float64 `json:"totalCost"`
}

type ReservationConfirmed struct {
	ReservationID string `json:"reservationId"`
}

type ReservationCancelled struct {
	ReservationID  string  `json:"reservationId"`
	RefundedAmount float64 `json:"refundedAmount"`
	ReleaseFailed  bool    `json:"releaseFailed"`
}
