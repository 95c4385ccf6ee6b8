package idempotency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeer struct {
	seen map[string]bool
	err  error
}

func (f *fakeSeer) Key(scope, id string) string { return fmt.Sprintf("idem:%s:%s", scope, id) }

func (f *fakeSeer) Seen(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen[key] {
		return true, nil
	}
	f.seen[key] = true
	return false, nil
}

func newHandler(seer Seer, hits *int) http.Handler {
	log := slog.New(slog.DiscardHandler)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(log, seer, "payments")(inner)
}

func TestMiddlewareRejectsDuplicateKey(t *testing.T) {
	var hits int
	h := newHandler(&fakeSeer{seen: map[string]bool{}}, &hits)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(HeaderKey, "abc-123")
	h.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req2.Header.Set(HeaderKey, "abc-123")
	h.ServeHTTP(second, req2)

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, hits)
}

func TestMiddlewarePassesWithoutKey(t *testing.T) {
	var hits int
	h := newHandler(&fakeSeer{seen: map[string]bool{}}, &hits)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 3, hits)
}

func TestMiddlewareFailsOpenOnStoreError(t *testing.T) {
	var hits int
	h := newHandler(&fakeSeer{err: errors.New("redis down")}, &hits)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(HeaderKey, "abc-123")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits)
}
