package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS hotel_inventory (
		hotel_id TEXT PRIMARY KEY,
		total_ac_rooms INT NOT NULL CHECK (total_ac_rooms >= 0),
		available_ac_rooms INT NOT NULL CHECK (available_ac_rooms >= 0 AND available_ac_rooms <= total_ac_rooms),
		total_non_ac_rooms INT NOT NULL CHECK (total_non_ac_rooms >= 0),
		available_non_ac_rooms INT NOT NULL CHECK (available_non_ac_rooms >= 0 AND available_non_ac_rooms <= total_non_ac_rooms)
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, inv domain.HotelInventory) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO hotel_inventory
		(hotel_id, total_ac_rooms, available_ac_rooms, total_non_ac_rooms, available_non_ac_rooms)
		VALUES ($1,$2,$3,$4,$5)`,
		inv.HotelID, inv.TotalACRooms, inv.AvailableACRooms, inv.TotalNonACRooms, inv.AvailableNonACRooms)
	return err
}

func (r *Repository) Get(ctx context.Context, hotelID string) (domain.HotelInventory, error) {
	var inv domain.HotelInventory
	err := r.pool.QueryRow(ctx, `SELECT hotel_id, total_ac_rooms, available_ac_rooms, total_non_ac_rooms, available_non_ac_rooms
		FROM hotel_inventory WHERE hotel_id=$1`, hotelID).
		Scan(&inv.HotelID, &inv.TotalACRooms, &inv.AvailableACRooms, &inv.TotalNonACRooms, &inv.AvailableNonACRooms)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HotelInventory{}, domain.ErrHotelNotFound
	}
	if err != nil {
		return domain.HotelInventory{}, err
	}
	return inv, nil
}

// TryReserve runs the availability check and the decrement as a single
// conditional UPDATE, so concurrent reserves against the same hotel and
// class serialize on the row and cannot oversell.
func (r *Repository) TryReserve(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) (bool, error) {
	if rooms <= 0 {
		return false, nil
	}
	avail := availableColumn(class)
	ct, err := r.pool.Exec(ctx,
		`UPDATE hotel_inventory SET `+avail+` = `+avail+` - $2 WHERE hotel_id=$1 AND `+avail+` >= $2`,
		hotelID, rooms)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() > 0 {
		return true, nil
	}
	// Distinguish a missing hotel from plain insufficiency.
	if _, err := r.Get(ctx, hotelID); err != nil {
		return false, err
	}
	return false, nil
}

// Release increments the counter clamped to the class total; releasing
// more rooms than were ever reserved is absorbed by the LEAST.
func (r *Repository) Release(ctx context.Context, hotelID string, class domain.RoomClass, rooms int) error {
	if rooms <= 0 {
		return nil
	}
	avail, total := availableColumn(class), totalColumn(class)
	ct, err := r.pool.Exec(ctx,
		`UPDATE hotel_inventory SET `+avail+` = LEAST(`+total+`, `+avail+` + $2) WHERE hotel_id=$1`,
		hotelID, rooms)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, hotelID string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM hotel_inventory WHERE hotel_id=$1`, hotelID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func availableColumn(class domain.RoomClass) string {
	if class == domain.RoomClassAC {
		return "available_ac_rooms"
	}
	return "available_non_ac_rooms"
}

func totalColumn(class domain.RoomClass) string {
	if class == domain.RoomClassAC {
		return "total_ac_rooms"
	}
	return "total_non_ac_rooms"
}
