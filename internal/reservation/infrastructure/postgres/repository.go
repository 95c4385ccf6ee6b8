package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	invdomain "github.com/psingh4854/Hotel-Booking-System/internal/inventory/domain"
	"github.com/psingh4854/Hotel-Booking-System/internal/reservation/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		hotel_id TEXT NOT NULL,
		room_type TEXT NOT NULL,
		number_of_rooms INT NOT NULL,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		number_of_guests INT NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		refunded_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS outbox (
		id BIGSERIAL PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		type TEXT NOT NULL,
		payload JSONB NOT NULL,
		traceparent TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		relay_id TEXT,
		lease_until TIMESTAMPTZ,
		retry_count INT NOT NULL DEFAULT 0,
		last_error TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (r *Repository) SaveWithOutbox(ctx context.Context, res domain.Reservation, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO reservations
		(id, user_id, hotel_id, room_type, number_of_rooms, check_in_date, check_out_date,
		 number_of_guests, total_cost, refunded_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET refunded_amount=$10, status=$11, updated_at=$13`,
		res.ID, res.UserID, res.HotelID, string(res.RoomType), res.NumberOfRooms,
		res.CheckInDate, res.CheckOutDate, res.NumberOfGuests, res.TotalCost,
		res.RefundedAmount, string(res.Status), res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
		VALUES ($1,$2,$3,$4,$5)`,
		"reservation", res.ID, eventType, payload, traceparent)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const selectColumns = `id, user_id, hotel_id, room_type, number_of_rooms, check_in_date,
	check_out_date, number_of_guests, total_cost, refunded_amount, status, created_at, updated_at`

func (r *Repository) Get(ctx context.Context, id string) (domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM reservations WHERE id=$1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, err
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM reservations WHERE user_id=$1 ORDER BY created_at`, userID)
}

func (r *Repository) ListByHotel(ctx context.Context, hotelID string) ([]domain.Reservation, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM reservations WHERE hotel_id=$1 ORDER BY created_at`, hotelID)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Reservation, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM reservations WHERE status=$1 ORDER BY created_at`, string(status))
}

func (r *Repository) DeleteByHotel(ctx context.Context, hotelID string) (int, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE hotel_id=$1`, hotelID)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	var roomType, status string
	err := row.Scan(&res.ID, &res.UserID, &res.HotelID, &roomType, &res.NumberOfRooms,
		&res.CheckInDate, &res.CheckOutDate, &res.NumberOfGuests, &res.TotalCost,
		&res.RefundedAmount, &status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.RoomType = invdomain.RoomClass(roomType)
	res.Status = domain.Status(status)
	return res, nil
}
