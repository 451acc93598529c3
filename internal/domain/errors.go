package domain

import "errors"

// Sentinel errors shared across usecases and adapters. Handlers map these to
// HTTP statuses and user-facing messages; none of them is fatal to the
// process.
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrClaimNotFound   = errors.New("claim not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("tracker item not found")
	ErrChatNotFound    = errors.New("chat not found")

	// ErrAlreadyClaimed is the race-condition outcome: the listing existed
	// but its status was no longer "available" at write time. It must stay
	// distinct from generic store failures.
	ErrAlreadyClaimed = errors.New("listing already claimed")
	// ErrSelfClaim rejects a donor claiming their own listing, regardless of
	// the listing's status.
	ErrSelfClaim = errors.New("cannot claim your own listing")
	// ErrStatsIncomplete reports that the claim succeeded but one of the
	// stats increments did not. The claim stands; stats are best effort.
	ErrStatsIncomplete = errors.New("claim recorded but stats update failed")

	ErrInvalidListing   = errors.New("invalid listing data")
	ErrInvalidItem      = errors.New("invalid tracker item")
	ErrInvalidMessage   = errors.New("invalid chat message")
	ErrDailyLimit       = errors.New("daily post limit reached")
	ErrForbidden        = errors.New("action forbidden")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCodeExpired        = errors.New("verification code expired or invalid")
)
