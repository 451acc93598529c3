package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaForQuantity(t *testing.T) {
	cases := []struct {
		kg    float64
		meals int64
		co2   int64
		water int64
	}{
		{1, 4, 3, 250},      // round(2.5) = 3, banker-free math.Round
		{5, 20, 13, 1250},   // round(12.5) = 13
		{2.3, 9, 6, 575},    // round(9.2), round(5.75), round(575)
		{0.1, 0, 0, 25},     // round(0.4) = 0, round(0.25) = 0
		{50, 200, 125, 12500},
	}

	for _, tc := range cases {
		got := DeltaForQuantity(tc.kg)
		assert.Equal(t, tc.kg, got.Kg)
		assert.Equal(t, tc.meals, got.Meals, "meals for %.1fkg", tc.kg)
		assert.Equal(t, tc.co2, got.Co2, "co2 for %.1fkg", tc.kg)
		assert.Equal(t, tc.water, got.Water, "water for %.1fkg", tc.kg)
		assert.Equal(t, int64(1), got.Donations)
	}
}

// Rounding happens per contribution. Three 0.4kg donations yield 3*round(1.6)
// meals, not round(4.8); the counters must add up the same way regardless of
// the order the deltas land in.
func TestDeltaForQuantity_PerContributionRounding(t *testing.T) {
	var meals int64
	for i := 0; i < 3; i++ {
		meals += DeltaForQuantity(0.4).Meals
	}
	assert.Equal(t, int64(6), meals)
	assert.NotEqual(t, int64(5), meals) // round(3*0.4*4) would give 5
}

func TestUnlockedBadges(t *testing.T) {
	none := UnlockedBadges(UserStats{})
	assert.Empty(t, none)

	first := UnlockedBadges(UserStats{Donations: 1})
	assert.Equal(t, []string{"first_donation"}, first)

	// 5 donations, 8kg: Rising Star but not Eco Warrior.
	mid := UnlockedBadges(UserStats{Donations: 5, TotalKg: 8, TotalMeals: 32, TotalCo2: 20, TotalWater: 2000})
	assert.Contains(t, mid, "five_donations")
	assert.NotContains(t, mid, "ten_donations")
	assert.NotContains(t, mid, "ten_kg")
	assert.Contains(t, mid, "water_saver")

	all := UnlockedBadges(UserStats{Donations: 20, TotalKg: 120, TotalMeals: 600, TotalCo2: 300, TotalWater: 30000})
	assert.Len(t, all, len(BadgeCatalog))
}
