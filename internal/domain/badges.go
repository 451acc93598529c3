package domain

// Badge is a derived achievement. Unlock state is recomputed from UserStats
// on every read and never persisted, so the catalog can change without a
// data migration.
type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocks     func(UserStats) bool `json:"-"`
}

// BadgeCatalog is the fixed, ordered badge definition list.
var BadgeCatalog = []Badge{
	{ID: "first_donation", Icon: "🌱", Name: "First Step", Description: "Make your first donation",
		Unlocks: func(s UserStats) bool { return s.Donations >= 1 }},
	{ID: "five_donations", Icon: "⭐", Name: "Rising Star", Description: "5 donations made",
		Unlocks: func(s UserStats) bool { return s.Donations >= 5 }},
	{ID: "ten_donations", Icon: "🔥", Name: "On Fire", Description: "10 donations made",
		Unlocks: func(s UserStats) bool { return s.Donations >= 10 }},
	{ID: "ten_kg", Icon: "♻️", Name: "Eco Warrior", Description: "Rescued 10kg of food",
		Unlocks: func(s UserStats) bool { return s.TotalKg >= 10 }},
	{ID: "fifty_kg", Icon: "🏆", Name: "Food Hero", Description: "Rescued 50kg of food",
		Unlocks: func(s UserStats) bool { return s.TotalKg >= 50 }},
	{ID: "hundred_meals", Icon: "🍽️", Name: "Hunger Fighter", Description: "Provided 100 meals",
		Unlocks: func(s UserStats) bool { return s.TotalMeals >= 100 }},
	{ID: "five_hundred_meals", Icon: "👑", Name: "Community Champion", Description: "Provided 500 meals",
		Unlocks: func(s UserStats) bool { return s.TotalMeals >= 500 }},
	{ID: "co2_saver", Icon: "🌿", Name: "Carbon Cutter", Description: "Saved 25kg of CO2",
		Unlocks: func(s UserStats) bool { return s.TotalCo2 >= 25 }},
	{ID: "water_saver", Icon: "💧", Name: "Water Guardian", Description: "Saved 1000L of water",
		Unlocks: func(s UserStats) bool { return s.TotalWater >= 1000 }},
}

// UnlockedBadges returns the ids of all badges the given stats unlock,
// in catalog order.
func UnlockedBadges(stats UserStats) []string {
	var unlocked []string
	for _, b := range BadgeCatalog {
		if b.Unlocks(stats) {
			unlocked = append(unlocked, b.ID)
		}
	}
	return unlocked
}
