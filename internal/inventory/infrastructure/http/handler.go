package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/application"
	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
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
		tracer:  otel.Tracer("hotel-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/hotels", h.registerHotel)
	r.Get("/hotels/{hotelId}", h.getInventory)
	r.Delete("/hotels/{hotelId}", h.removeHotel)
	r.Get("/hotels/{hotelId}/room-availability", h.checkRoomAvailability)
	r.Post("/hotels/{hotelId}/update-room-availability", h.updateRoomAvailability)
	return r
}

type registerHotelReq struct {
	HotelID         string `json:"hotelId"`
	TotalACRooms    int    `json:"totalAcRooms"`
	TotalNonACRooms int    `json:"totalNonAcRooms"`
}

type inventoryResp struct {
	HotelID             string `json:"hotelId"`
	TotalACRooms        int    `json:"totalAcRooms"`
	AvailableACRooms    int    `json:"availableAcRooms"`
	TotalNonACRooms     int    `json:"totalNonAcRooms"`
	AvailableNonACRooms int    `json:"availableNonAcRooms"`
}

func toInventoryResp(inv domain.HotelInventory) inventoryResp {
	return inventoryResp{
		HotelID:             inv.HotelID,
		TotalACRooms:        inv.TotalACRooms,
		AvailableACRooms:    inv.AvailableACRooms,
		TotalNonACRooms:     inv.TotalNonACRooms,
		AvailableNonACRooms: inv.AvailableNonACRooms,
	}
}

func (h *Handler) registerHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RegisterHotel")
	defer span.End()

	var req registerHotelReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	inv, err := h.service.Register(ctx, req.HotelID, req.TotalACRooms, req.TotalNonACRooms)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toInventoryResp(inv))
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Get(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toInventoryResp(inv))
}

func (h *Handler) removeHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveHotel")
	defer span.End()

	if err := h.service.Remove(ctx, chi.URLParam(r, "hotelId")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkRoomAvailability(w http.ResponseWriter, r *http.Request) {
	class, rooms, err := roomQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	available, err := h.service.CheckAvailability(r.Context(), chi.URLParam(r, "hotelId"), class, rooms)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"available": available})
}

// updateRoomAvailability keeps the original combined endpoint shape:
// isReservation=true reserves, false releases.
func (h *Handler) updateRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateRoomAvailability")
	defer span.End()

	class, rooms, err := roomQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	isReservation, err := strconv.ParseBool(r.URL.Query().Get("isReservation"))
	if err != nil {
		http.Error(w, "invalid isReservation", http.StatusBadRequest)
		return
	}

	hotelID := chi.URLParam(r, "hotelId")
	success := true
	if isReservation {
		success, err = h.service.Reserve(ctx, hotelID, class, rooms)
	} else {
		err = h.service.Release(ctx, hotelID, class, rooms)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": success})
}

func roomQuery(r *http.Request) (domain.RoomClass, int, error) {
	class, err := domain.ParseRoomClass(r.URL.Query().Get("roomType"))
	if err != nil {
		return "", 0, err
	}
	rooms, err := strconv.Atoi(r.URL.Query().Get("numberOfRooms"))
	if err != nil || rooms < 1 {
		return "", 0, errors.New("numberOfRooms must be a positive integer")
	}
	return class, rooms, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrHotelNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrUnknownRoomClass), errors.Is(err, domain.ErrInvalidInventory):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error("inventory request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
