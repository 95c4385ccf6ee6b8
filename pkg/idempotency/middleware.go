package idempotency

import (
	"context"
	"log/slog"
	"net/http"
)

const HeaderKey = "Idempotency-Key"

// Seer is the subset of Store the middleware needs.
type Seer interface {
	Key(scope, id string) string
	Seen(ctx context.Context, key string) (bool, error)
}

// Middleware rejects a request whose Idempotency-Key header was already
// seen within the store's TTL. Requests without the header pass through
// untouched; the guard is opt-in per client.
func Middleware(log *slog.Logger, seer Seer, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderKey)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			seen, err := seer.Seen(r.Context(), seer.Key(scope, id))
			if err != nil {
				// Fail open: dedup is a convenience, not a correctness gate.
				log.Error("idempotency check failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				log.Info("duplicate request rejected", "idempotency_key", id)
				http.Error(w, "duplicate request", http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
