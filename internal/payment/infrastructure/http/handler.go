package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/psingh4854/Hotel-Booking-System/internal/payment/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/payment/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("payment-http"),
	}
}

// Routes wires the payment endpoints. Guards are applied to the charge
// endpoint only; the idempotency middleware goes here so retried charges
// with the same Idempotency-Key are rejected instead of double-billed.
func (h *Handler) Routes(guards ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.With(guards...).Post("/payments", h.processPayment)
	r.Get("/payments", h.listPayments)
	r.Get("/payments/{id}", h.getPayment)
	r.Delete("/payments/{id}", h.deletePayment)
	r.Post("/payments/{id}/refund", h.refundPayment)
	r.Get("/payments/transaction/{txnId}", h.getByTransaction)
	return r
}

type processPaymentReq struct {
	ReservationID  string  `json:"reservationId"`
	UserID         string  `json:"userId"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"paymentMethod"`
	CardNumber     string  `json:"cardNumber,omitempty"`
	CardHolderName string  `json:"cardHolderName,omitempty"`
	ExpiryMonth    string  `json:"expiryMonth,omitempty"`
	ExpiryYear     string  `json:"expiryYear,omitempty"`
	CVV            string  `json:"cvv,omitempty"`
	UPIID          string  `json:"upiId,omitempty"`
	BankName       string  `json:"bankName,omitempty"`
}

type paymentResp struct {
	PaymentID     string  `json:"paymentId"`
	ReservationID string  `json:"reservationId"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId,omitempty"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toPaymentResp(p domain.Payment) paymentResp {
	return paymentResp{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		PaymentMethod: string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ProcessPayment")
	defer span.End()

	var req processPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.ReservationID == "" || req.UserID == "" {
		http.Error(w, "reservationId and userId are required", http.StatusBadRequest)
		return
	}

	p, err := h.service.Process(ctx, application.ProcessInput{
		ReservationID:  req.ReservationID,
		UserID:         req.UserID,
		Amount:         req.Amount,
		Method:         domain.Method(req.PaymentMethod),
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CVV:            req.CVV,
		UPIID:          req.UPIID,
		BankName:       req.BankName,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResp(p))
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResp(p))
}

func (h *Handler) getByTransaction(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByTransactionID(r.Context(), chi.URLParam(r, "txnId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResp(p))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		out []domain.Payment
		err error
	)
	switch q := r.URL.Query(); {
	case q.Get("userId") != "":
		out, err = h.service.ListByUser(ctx, q.Get("userId"))
	case q.Get("reservationId") != "":
		out, err = h.service.ListByReservation(ctx, q.Get("reservationId"))
	case q.Get("status") != "":
		out, err = h.service.ListByStatus(ctx, domain.Status(q.Get("status")))
	default:
		http.Error(w, "one of userId, reservationId or status is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := make([]paymentResp, 0, len(out))
	for _, p := range out {
		resp = append(resp, toPaymentResp(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) refundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RefundPayment")
	defer span.End()

	p, err := h.service.Refund(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResp(p))
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidRefundState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("payment request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
