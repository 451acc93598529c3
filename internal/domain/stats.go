package domain

import "math"

// Impact conversion factors. Fixed domain parameters, not configuration:
// 1 kg of rescued food is counted as ~4 meals, ~2.5 kg of CO2 avoided and
// ~250 litres of water saved.
const (
	MealsPerKg = 4.0
	Co2PerKg   = 2.5
	WaterPerKg = 250.0
)

// UserStats holds a user's cumulative impact counters. Every field is
// monotonically non-decreasing and is only ever mutated through additive
// increments, never absolute overwrites.
type UserStats struct {
	UserID     string  `bson:"_id,omitempty" json:"userId"`
	TotalKg    float64 `bson:"total_kg" json:"totalKg"`
	TotalMeals int64   `bson:"total_meals" json:"totalMeals"`
	TotalCo2   int64   `bson:"total_co2" json:"totalCo2"`
	TotalWater int64   `bson:"total_water" json:"totalWater"`
	Donations  int64   `bson:"donations" json:"donations"`
}

// GlobalStats is the community-wide singleton with the same counter shape.
type GlobalStats struct {
	TotalKg    float64 `bson:"total_kg" json:"totalKg"`
	TotalMeals int64   `bson:"total_meals" json:"totalMeals"`
	TotalCo2   int64   `bson:"total_co2" json:"totalCo2"`
	TotalWater int64   `bson:"total_water" json:"totalWater"`
	Donations  int64   `bson:"donations" json:"donations"`
}

// StatsDelta is one increment applied to a stats document.
type StatsDelta struct {
	Kg        float64
	Meals     int64
	Co2       int64
	Water     int64
	Donations int64
}

// DeltaForQuantity derives the impact increment for a quantity in kg.
// Rounding happens here, per contribution, so that repeated small donations
// accumulate the same way the per-call arithmetic always did.
func DeltaForQuantity(kg float64) StatsDelta {
	return StatsDelta{
		Kg:        kg,
		Meals:     int64(math.Round(kg * MealsPerKg)),
		Co2:       int64(math.Round(kg * Co2PerKg)),
		Water:     int64(math.Round(kg * WaterPerKg)),
		Donations: 1,
	}
}
