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

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/domain"
)

const dateLayout = "2006-01-02"

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("reservation-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/reservations", h.createReservation)
	r.Get("/reservations", h.listReservations)
	r.Get("/reservations/{id}", h.getReservation)
	r.Post("/reservations/{id}/confirm", h.confirmReservation)
	r.Post("/reservations/{id}/cancel", h.cancelReservation)
	r.Delete("/reservations/hotel/{hotelId}", h.deleteByHotel)
	return r
}

type createReservationReq struct {
	UserID         string  `json:"userId"`
	HotelID        string  `json:"hotelId"`
	RoomType       string  `json:"roomType"`
	NumberOfRooms  int     `json:"numberOfRooms"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	NumberOfGuests int     `json:"numberOfGuests"`
	TotalCost      float64 `json:"totalCost"`
}

type reservationResp struct {
	ReservationID  string  `json:"reservationId"`
	UserID         string  `json:"userId"`
	HotelID        string  `json:"hotelId"`
	RoomType       string  `json:"roomType"`
	NumberOfRooms  int     `json:"numberOfRooms"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	NumberOfGuests int     `json:"numberOfGuests"`
	TotalCost      float64 `json:"totalCost"`
	RefundedAmount float64 `json:"refundedAmount"`
	Status         string  `json:"status"`
	ReleaseWarning string  `json:"releaseWarning,omitempty"`
}

func toReservationResp(r domain.Reservation) reservationResp {
	return reservationResp{
		ReservationID:  r.ID,
		UserID:         r.UserID,
		HotelID:        r.HotelID,
		RoomType:       string(r.RoomType),
		NumberOfRooms:  r.NumberOfRooms,
		CheckInDate:    r.CheckInDate.Format(dateLayout),
		CheckOutDate:   r.CheckOutDate.Format(dateLayout),
		NumberOfGuests: r.NumberOfGuests,
		TotalCost:      r.TotalCost,
		RefundedAmount: r.RefundedAmount,
		Status:         string(r.Status),
	}
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateReservation")
	defer span.End()

	var req createReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	roomType, err := invdomain.ParseRoomClass(req.RoomType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		http.Error(w, "invalid checkInDate", http.StatusBadRequest)
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		http.Error(w, "invalid checkOutDate", http.StatusBadRequest)
		return
	}

	res, err := h.service.Create(ctx, application.CreateInput{
		UserID:         req.UserID,
		HotelID:        req.HotelID,
		RoomType:       roomType,
		NumberOfRooms:  req.NumberOfRooms,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: req.NumberOfGuests,
		TotalCost:      req.TotalCost,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResp(res))
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResp(res))
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		out []domain.Reservation
		err error
	)
	switch q := r.URL.Query(); {
	case q.Get("userId") != "":
		out, err = h.service.ListByUser(ctx, q.Get("userId"))
	case q.Get("hotelId") != "":
		out, err = h.service.ListByHotel(ctx, q.Get("hotelId"))
	case q.Get("status") != "":
		out, err = h.service.ListByStatus(ctx, domain.Status(q.Get("status")))
	default:
		http.Error(w, "one of userId, hotelId or status is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := make([]reservationResp, 0, len(out))
	for _, res := range out {
		resp = append(resp, toReservationResp(res))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) confirmReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ConfirmReservation")
	defer span.End()

	res, err := h.service.Confirm(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResp(res))
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CancelReservation")
	defer span.End()

	result, err := h.service.Cancel(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := toReservationResp(result.Reservation)
	resp.ReleaseWarning = result.ReleaseWarning
	writeJSON(w, http.StatusOK, resp)
}

type deleteByHotelResp struct {
	Deleted        int      `json:"deleted"`
	FailedReleases []string `json:"failedReleases"`
}

func (h *Handler) deleteByHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteReservationsByHotel")
	defer span.End()

	report, err := h.service.DeleteByHotel(ctx, chi.URLParam(r, "hotelId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := deleteByHotelResp{Deleted: report.Deleted, FailedReleases: []string{}}
	for _, f := range report.FailedReleases {
		resp.FailedReleases = append(resp.FailedReleases, f.ReservationID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound), errors.Is(err, invdomain.ErrHotelNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInventoryExhausted), errors.Is(err, domain.ErrReservationFailed),
		errors.Is(err, domain.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidReservation), errors.Is(err, invdomain.ErrUnknownRoomClass):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error("reservation request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
