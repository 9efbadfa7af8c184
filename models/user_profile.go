package models

import "gorm.io/gorm"

// Sex values.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Goal values.
const (
	GoalMaintenance = "maintenance"
	GoalLoss        = "loss"
	GoalGain        = "gain"
)

// Activity levels, ordinal 0..8. The multiplier table lives in the target
// engine.
const (
	ActivityVerySedentary = iota
	ActivitySedentary
	ActivityLightlyActive
	ActivityLowActive
	ActivityModerate
	ActivityActive
	ActivityVeryActive
	ActivityExtremelyActive
	ActivityUltraIntense
)

// Diet presets for the macro split.
const (
	PresetBalanced    = "balanced"
	PresetHypocaloric = "hypocaloric"
	PresetHighProtein = "high_protein"
	PresetKetogenic   = "ketogenic"
	PresetMassGain    = "mass_gain"
	PresetVegetarian  = "vegetarian"
	PresetCustom      = "custom"
)

// UserProfile is a single-row table (one profile per store), created with
// defaults on first access and mutated in place.
type UserProfile struct {
	gorm.Model
	Name          string
	Sex           string `gorm:"default:male"`
	Age           int
	HeightCm      float64
	WeightKg      float64
	ActivityLevel int
	Goal          string `gorm:"default:maintenance"`
	// WeeklyRateG is the desired body-mass change in grams per week,
	// converted to a daily kcal delta by the target engine.
	WeeklyRateG      float64
	OverrideCalories int // 0 means no override
	DietPreset       string `gorm:"default:balanced"`
	ProteinPerKg     float64
	CarbsPerKg       float64
	FatPerKg         float64
	ActiveTheme      string

	// Cached targets, refreshed on every profile save. Day reports always
	// recompute from the profile; these exist for cheap GUI reads.
	TargetCalories int
	TargetProtein  int
	TargetCarbs    int
	TargetFat      int
}
