package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAvailable(ctx context.Context, filter ListingFilter) ([]*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	FindByDonor(ctx context.Context, donorID string) ([]*Listing, error)
	CountByDonorBetween(ctx context.Context, donorID string, from, to time.Time) (int64, error)
	// ClaimAvailable atomically flips status available->claimed for the given
	// listing. It returns ErrAlreadyClaimed when the listing exists but is no
	// longer available, and ErrListingNotFound when it does not exist.
	ClaimAvailable(ctx context.Context, id, recipientID, recipientName string, at time.Time) (*Listing, error)
	SetPhotoURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *Claim) error
	FindByID(ctx context.Context, id string) (*Claim, error)
	FindByRecipient(ctx context.Context, recipientID string) ([]*Claim, error)
	FindAll(ctx context.Context) ([]*Claim, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type StatsRepository interface {
	// IncrementUser and IncrementGlobal apply the delta with the store's
	// atomic additive update, creating the document on first touch.
	IncrementUser(ctx context.Context, userID string, delta StatsDelta) error
	IncrementGlobal(ctx context.Context, delta StatsDelta) error
	InitUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*UserStats, error)
	GetGlobal(ctx context.Context) (*GlobalStats, error)
	TopByMeals(ctx context.Context, limit int64) ([]*UserStats, error)
}

type TrackerRepository interface {
	Add(ctx context.Context, item *TrackerItem) error
	FindByOwner(ctx context.Context, ownerID string) ([]*TrackerItem, error)
	FindByID(ctx context.Context, ownerID, id string) (*TrackerItem, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetVerificationCode(ctx context.Context, userID, code string, expiresAt time.Time) error
	MarkEmailVerified(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ChatRepository interface {
	FindChat(ctx context.Context, id string) (*Chat, error)
	CreateChat(ctx context.Context, chat *Chat) error
	AppendMessage(ctx context.Context, msg *Message) error
	FindMessages(ctx context.Context, chatID string) ([]*Message, error)
}
