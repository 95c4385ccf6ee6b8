package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrUnknownRoomClass = errors.New("unknown room class")
	ErrInvalidInventory = errors.New("invalid inventory")
)

// RoomClass is the room category a hotel tracks separate counters for.
type RoomClass string

const (
	RoomClassAC    RoomClass = "AC"
	RoomClassNonAC RoomClass = "NON_AC"
)

// ParseRoomClass accepts the wire spelling case-insensitively.
func ParseRoomClass(s string) (RoomClass, error) {
	switch strings.ToUpper(s) {
	case "AC":
		return RoomClassAC, nil
	case "NON_AC":
		return RoomClassNonAC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRoomClass, s)
	}
}

// HotelInventory holds the per-hotel room counters. The invariant
// 0 <= available <= total holds for both classes after every operation.
type HotelInventory struct {
	HotelID             string
	TotalACRooms        int
	AvailableACRooms    int
	TotalNonACRooms     int
	AvailableNonACRooms int
}

// NewHotelInventory creates a fully available inventory for a hotel.
func NewHotelInventory(hotelID string, totalAC, totalNonAC int) (HotelInventory, error) {
	if hotelID == "" {
		return HotelInventory{}, fmt.Errorf("%w: hotel id is required", ErrInvalidInventory)
	}
	if totalAC < 0 || totalNonAC < 0 {
		return HotelInventory{}, fmt.Errorf("%w: room totals must be non-negative", ErrInvalidInventory)
	}
	return HotelInventory{
		HotelID:             hotelID,
		TotalACRooms:        totalAC,
		AvailableACRooms:    totalAC,
		TotalNonACRooms:     totalNonAC,
		AvailableNonACRooms: totalNonAC,
	}, nil
}

func (h HotelInventory) Available(class RoomClass) int {
	if class == RoomClassAC {
		return h.AvailableACRooms
	}
	return h.AvailableNonACRooms
}

func (h HotelInventory) Total(class RoomClass) int {
	if class == RoomClassAC {
		return h.TotalACRooms
	}
	return h.TotalNonACRooms
}

// CanReserve reports whether rooms of the class are available in the
// requested quantity.
func (h HotelInventory) CanReserve(class RoomClass, rooms int) bool {
	return rooms > 0 && h.Available(class) >= rooms
}

// Reserve decrements the available counter if the quantity is covered,
// reporting whether the decrement happened. The check and the decrement
// are one step; callers serialize access per hotel.
func (h *HotelInventory) Reserve(class RoomClass, rooms int) bool {
	if !h.CanReserve(class, rooms) {
		return false
	}
	if class == RoomClassAC {
		h.AvailableACRooms -= rooms
	} else {
		h.AvailableNonACRooms -= rooms
	}
	return true
}

// Release increments the available counter, clamped to the class total.
// A release of more rooms than were ever reserved is absorbed silently;
// the counter never exceeds the total.
func (h *HotelInventory) Release(class RoomClass, rooms int) {
	if rooms <= 0 {
		return
	}
	if class == RoomClassAC {
		h.AvailableACRooms = min(h.TotalACRooms, h.AvailableACRooms+rooms)
	} else {
		h.AvailableNonACRooms = min(h.TotalNonACRooms, h.AvailableNonACRooms+rooms)
	}
}
