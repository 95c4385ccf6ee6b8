package integration

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paydomain "github.com/psingh4854/Hotel-Booking-System/internal/payment/domain"
	paypg "github.com/psingh4854/Hotel-Booking-System/internal/payment/infrastructure/postgres"
)

// TestPaymentUpsertCarriesRefund pins the upsert path: after a refund
// the re-saved row must come back REFUNDED with the refund description,
// not the stale charge verdict.
func TestPaymentUpsertCarriesRefund(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test, skipped in short mode")
	}
	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	defer env.Teardown(ctx)

	log := slog.New(slog.DiscardHandler)
	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	repo := paypg.NewRepository(log, pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	now := time.Now().UTC()
	p := paydomain.NewPayment("pay-1", "res-1", "u1", 4000, paydomain.MethodUPI, now)
	p.UPIID = "priya@okbank"
	p.MarkOutcome(p.ValidDetails(), now)
	require.Equal(t, paydomain.StatusSuccess, p.Status)

	payload, _ := json.Marshal(paydomain.PaymentProcessed{PaymentID: p.ID, Status: string(p.Status)})
	require.NoError(t, repo.SaveWithOutbox(ctx, p, "PaymentProcessed", payload, ""))

	require.NoError(t, p.Refund(now.Add(time.Minute)))
	payload, _ = json.Marshal(paydomain.PaymentRefunded{PaymentID: p.ID, Amount: p.Amount})
	require.NoError(t, repo.SaveWithOutbox(ctx, p, "PaymentRefunded", payload, ""))

	stored, err := repo.Get(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, paydomain.StatusRefunded, stored.Status)
	assert.Equal(t, "Payment refunded", stored.Description)
	assert.Equal(t, p.TransactionID, stored.TransactionID)
}
