package domain

import "time"

type ExpiryStatus string

const (
	ExpiryExpired ExpiryStatus = "expired"
	ExpiryUrgent  ExpiryStatus = "urgent"
	ExpiryWarning ExpiryStatus = "warning"
	ExpiryFresh   ExpiryStatus = "fresh"
)

// ExpiryThresholds are the inclusive upper bounds (in days left) of the
// urgent and warning bands. Below zero is always expired, above WarningMax
// is always fresh.
type ExpiryThresholds struct {
	UrgentMax  int
	WarningMax int
}

// ListingThresholds and TrackerThresholds are the two call sites of the one
// classifier. Listings flag 0-2 days as urgent; the tracker gives its users
// one extra day of lead time before an item stops being donatable.
var (
	ListingThresholds = ExpiryThresholds{UrgentMax: 2, WarningMax: 5}
	TrackerThresholds = ExpiryThresholds{UrgentMax: 3, WarningMax: 5}
)

// ExpiryClassification is the derived urgency of one expiry date.
type ExpiryClassification struct {
	Status   ExpiryStatus `json:"status"`
	DaysLeft int          `json:"daysLeft"`
}

// ClassifyExpiry buckets an expiry date into an urgency band relative to
// today. Both dates are truncated to local midnight before subtracting, so
// an item expiring later today reports zero days left, not a fraction.
func ClassifyExpiry(expiryDate, today time.Time, t ExpiryThresholds) ExpiryClassification {
	daysLeft := daysBetweenMidnights(today, expiryDate)

	var status ExpiryStatus
	switch {
	case daysLeft < 0:
		status = ExpiryExpired
	case daysLeft <= t.UrgentMax:
		status = ExpiryUrgent
	case daysLeft <= t.WarningMax:
		status = ExpiryWarning
	default:
		status = ExpiryFresh
	}
	return ExpiryClassification{Status: status, DaysLeft: daysLeft}
}

// LocalMidnight truncates t to 00:00 in its own location.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetweenMidnights(from, to time.Time) int {
	f := LocalMidnight(from)
	u := LocalMidnight(to.In(from.Location()))
	return int(u.Sub(f).Hours() / 24)
}
