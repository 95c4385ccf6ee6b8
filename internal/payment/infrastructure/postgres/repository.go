package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psingh4854/Hotel-Booking-System/internal/payment/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		reservation_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		method TEXT NOT NULL,
		card_number TEXT NOT NULL DEFAULT '',
		card_holder_name TEXT NOT NULL DEFAULT '',
		expiry_month TEXT NOT NULL DEFAULT '',
		expiry_year TEXT NOT NULL DEFAULT '',
		cvv TEXT NOT NULL DEFAULT '',
		upi_id TEXT NOT NULL DEFAULT '',
		bank_name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		transaction_id TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
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

func (r *Repository) SaveWithOutbox(ctx context.Context, p domain.Payment, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO payments
		(id, reservation_id, user_id, amount, method, card_number, card_holder_name,
		 expiry_month, expiry_year, cvv, upi_id, bank_name, status, transaction_id,
		 description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET status=$13, transaction_id=$14, description=$15, updated_at=$17`,
		p.ID, p.ReservationID, p.UserID, p.Amount, string(p.Method), p.CardNumber,
		p.CardHolderName, p.ExpiryMonth, p.ExpiryYear, p.CVV, p.UPIID, p.BankName,
		string(p.Status), p.TransactionID, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
		VALUES ($1,$2,$3,$4,$5)`,
		"payment", p.ID, eventType, payload, traceparent)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const selectColumns = `id, reservation_id, user_id, amount, method, card_number, card_holder_name,
	expiry_month, expiry_year, cvv, upi_id, bank_name, status, transaction_id,
	description, created_at, updated_at`

func (r *Repository) Get(ctx context.Context, id string) (domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM payments WHERE id=$1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return p, err
}

func (r *Repository) GetByTransactionID(ctx context.Context, txnID string) (domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM payments WHERE transaction_id=$1`, txnID)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return p, err
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM payments WHERE user_id=$1 ORDER BY created_at`, userID)
}

func (r *Repository) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM payments WHERE reservation_id=$1 ORDER BY created_at`, reservationID)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM payments WHERE status=$1 ORDER BY created_at`, string(status))
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	var method, status string
	err := row.Scan(&p.ID, &p.ReservationID, &p.UserID, &p.Amount, &method, &p.CardNumber,
		&p.CardHolderName, &p.ExpiryMonth, &p.ExpiryYear, &p.CVV, &p.UPIID, &p.BankName,
		&status, &p.TransactionID, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Payment{}, err
	}
	p.Method = domain.Method(method)
	p.Status = domain.Status(status)
	return p, nil
}
