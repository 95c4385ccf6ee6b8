package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundAmountTiers(t *testing.T) {
	tests := []struct {
		days   int
		refund float64
	}{
		{10, 4000.0},
		{7, 4000.0},
		{6, 3000.0},
		{4, 3000.0},
		{3, 3000.0},
		{2, 2000.0},
		{1, 2000.0},
		{0, 0.0},
		{-3, 0.0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.refund, RefundAmount(4000.0, tc.days), "days=%d", tc.days)
	}
}

func TestDaysUntilCheckIn(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysUntilCheckIn(today, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)))
	// Time of day never shifts the count.
	assert.Equal(t, 1, DaysUntilCheckIn(today, time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysUntilCheckIn(today, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2, DaysUntilCheckIn(today, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
}
