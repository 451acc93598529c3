package domain

import "time"

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusClaimed   ListingStatus = "claimed"
)

type Category string

const (
	CategoryVeg      Category = "veg"
	CategoryNonVeg   Category = "nonveg"
	CategoryBakery   Category = "bakery"
	CategoryDairy    Category = "dairy"
	CategoryFruits   Category = "fruits"
	CategoryCooked   Category = "cooked"
	CategoryPackaged Category = "packaged"
)

// ValidCategory reports whether c is one of the known food categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryVeg, CategoryNonVeg, CategoryBakery, CategoryDairy,
		CategoryFruits, CategoryCooked, CategoryPackaged:
		return true
	}
	return false
}

const (
	// MaxQuantityKg is the per-post ceiling for a single listing.
	MaxQuantityKg = 50.0
	// MaxPostsPerDay limits how many listings a donor may create within one
	// local midnight-to-midnight day.
	MaxPostsPerDay = 3
)

// Listing is a donor's posted surplus-food offer. A listing is created by its
// owner, transitions available->claimed at most once, and is otherwise only
// ever deleted (by the owner or an admin), never edited.
type Listing struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	DonorID     string        `bson:"donor_id" json:"donorId"`
	DonorName   string        `bson:"donor_name" json:"donorName"`
	FoodName    string        `bson:"food_name" json:"foodName"`
	Category    Category      `bson:"category" json:"category"`
	Quantity    float64       `bson:"quantity" json:"quantity"`
	Unit        string        `bson:"unit" json:"unit"`
	Location    string        `bson:"location" json:"location"`
	Lat         *float64      `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng         *float64      `bson:"lng,omitempty" json:"lng,omitempty"`
	ExpiryDate  time.Time     `bson:"expiry_date" json:"expiryDate"`
	PickupStart *time.Time    `bson:"pickup_start,omitempty" json:"pickupStart,omitempty"`
	PickupEnd   *time.Time    `bson:"pickup_end,omitempty" json:"pickupEnd,omitempty"`
	Notes       string        `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURL    string        `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Status      ListingStatus `bson:"status" json:"status"`
	ClaimedBy   string        `bson:"claimed_by,omitempty" json:"claimedBy,omitempty"`
	ClaimedName string        `bson:"claimed_name,omitempty" json:"claimedName,omitempty"`
	ClaimedAt   *time.Time    `bson:"claimed_at,omitempty" json:"claimedAt,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}

// ListingFilter narrows the available-listings query. Zero values mean
// "no constraint".
type ListingFilter struct {
	Category   Category
	Query      string // matches food name or location
	ExpiryBand string // "today", "urgent" (1-2 days) or "week"
	Limit      int64
}
