package domain

import "time"

// Claim records a recipient's reservation of a listing. Exactly one claim is
// created per successful available->claimed transition and it is immutable
// afterwards; only an admin may remove one.
type Claim struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	ListingID     string    `bson:"listing_id" json:"listingId"`
	RecipientID   string    `bson:"recipient_id" json:"recipientId"`
	RecipientName string    `bson:"recipient_name" json:"recipientName"`
	DonorID       string    `bson:"donor_id" json:"donorId"`
	ClaimedAt     time.Time `bson:"claimed_at" json:"claimedAt"`
	Status        string    `bson:"status" json:"status"`
}
