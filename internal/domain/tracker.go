package domain

import "time"

// TrackerItem is a grocery item a user tracks for expiry, independent of the
// donation flow.
type TrackerItem struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	OwnerID    string    `bson:"owner_id" json:"ownerId"`
	Name       string    `bson:"name" json:"name"`
	Quantity   float64   `bson:"quantity" json:"quantity"`
	Unit       string    `bson:"unit" json:"unit"`
	Category   Category  `bson:"category,omitempty" json:"category,omitempty"`
	ExpiryDate time.Time `bson:"expiry_date" json:"expiryDate"`
	AddedAt    time.Time `bson:"added_at" json:"addedAt"`
}

// ListingDraft is a pre-filled listing form produced from a tracker item.
// Conversion copies fields only; the tracker item itself is left untouched
// so the user can keep tracking it until they actually post.
type ListingDraft struct {
	FoodName string   `json:"foodName"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Category Category `json:"category,omitempty"`
}
