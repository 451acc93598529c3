package usecase

import (
	"context"
	"time"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

// Publisher pushes change notifications out to interested parties. Mutating
// workflows publish after their writes succeed; delivery is fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// NATS subjects emitted by the usecases.
const (
	SubjectListingCreated = "foodbridge.listing.created"
	SubjectListingClaimed = "foodbridge.listing.claimed"
	SubjectListingDeleted = "foodbridge.listing.deleted"
	SubjectChatMessage    = "foodbridge.chat.message"
)

// PhotoStorage stores an uploaded photo and returns its public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// GeoPoint is a geocoded coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves free-text addresses, best effort: (nil, nil) means the
// address could not be plotted and is never treated as fatal.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}

// ListingCache fronts the hot listing reads.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
	GetAvailable(ctx context.Context) ([]*domain.Listing, error)
	SetAvailable(ctx context.Context, listings []*domain.Listing) error
	InvalidateAvailable(ctx context.Context) error
}

// TokenCache holds the active session token per user.
type TokenCache interface {
	CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error
	GetToken(ctx context.Context, userID string) (string, error)
	InvalidateToken(ctx context.Context, userID string) error
}

// Mailer sends transactional email.
type Mailer interface {
	SendVerificationEmail(toEmail, name, code string) error
}
