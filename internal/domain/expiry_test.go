package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExpiry_Bands(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return time.Date(2025, 6, 10+offset, 8, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		expiry     time.Time
		thresholds ExpiryThresholds
		wantStatus ExpiryStatus
		wantDays   int
	}{
		{"yesterday is expired", day(-1), ListingThresholds, ExpiryExpired, -1},
		{"earlier today is still zero days", day(0), ListingThresholds, ExpiryUrgent, 0},
		{"two days is urgent for listings", day(2), ListingThresholds, ExpiryUrgent, 2},
		{"three days is warning for listings", day(3), ListingThresholds, ExpiryWarning, 3},
		{"three days is urgent for the tracker", day(3), TrackerThresholds, ExpiryUrgent, 3},
		{"five days is warning", day(5), ListingThresholds, ExpiryWarning, 5},
		{"six days is fresh", day(6), ListingThresholds, ExpiryFresh, 6},
		{"far future is fresh", day(30), TrackerThresholds, ExpiryFresh, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyExpiry(tc.expiry, today, tc.thresholds)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.wantDays, got.DaysLeft)
		})
	}
}

// Day distance is computed between midnights, so the time of day on either
// side never shifts the band.
func TestClassifyExpiry_TimeOfDayIrrelevant(t *testing.T) {
	expiry := time.Date(2025, 6, 12, 23, 59, 0, 0, time.UTC)

	early := ClassifyExpiry(expiry, time.Date(2025, 6, 10, 0, 1, 0, 0, time.UTC), ListingThresholds)
	late := ClassifyExpiry(expiry, time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC), ListingThresholds)

	assert.Equal(t, early, late)
	assert.Equal(t, 2, early.DaysLeft)
}

func TestLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	got := LocalMidnight(time.Date(2025, 6, 10, 23, 45, 12, 999, loc))

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, loc), got)
}
