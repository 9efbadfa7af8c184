package services

import (
	"math"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// activityFactors maps the 9-level ordinal to its BMR multiplier. This is
// the single source of truth for valid activity levels.
var activityFactors = [9]float64{1.0, 1.1, 1.2, 1.375, 1.55, 1.725, 1.9, 2.1, 2.3}

// macroPresets maps a diet preset to its (protein, carbs, fat) share of
// final calories. The custom preset is handled separately from per-kg
// ratios.
var macroPresets = map[string][3]float64{
	models.PresetBalanced:    {0.30, 0.40, 0.30},
	models.PresetHypocaloric: {0.35, 0.35, 0.30},
	models.PresetHighProtein: {0.45, 0.35, 0.20},
	models.PresetKetogenic:   {0.30, 0.05, 0.65},
	models.PresetMassGain:    {0.35, 0.45, 0.20},
	models.PresetVegetarian:  {0.25, 0.50, 0.25},
}

// kcalPerGram converts a body-mass change rate into energy: ≈7700 kcal per
// kilogram of tissue, i.e. 7.7 kcal per gram.
const kcalPerGram = 7.7

// Targets is the computed daily energy and macro budget.
type Targets struct {
	BMR         int `json:"bmr"`
	Maintenance int `json:"maintenance_calories"`
	Goal        int `json:"goal_calories"`
	Final       int `json:"final_calories"`

	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`

	ProteinPct float64 `json:"protein_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
	FatPct     float64 `json:"fat_pct"`
}

// ComputeTargets derives the daily targets from a profile.
//
// BMR uses the Mifflin-St Jeor form: 10·weight + 6.25·height − 5·age, +5
// for male and −161 for female. Maintenance multiplies the rounded BMR by
// the activity factor and truncates; the goal delta converts the weekly
// change rate to kcal/day at 7.7 kcal/g. A positive calorie override wins
// over the goal calories.
func ComputeTargets(p models.UserProfile) Targets {
	c := 5.0
	if p.Sex == models.SexFemale {
		c = -161
	}
	if p.WeightKg <= 0 {
		// Degenerate profile: report the sex constant as BMR and zero
		// budgets rather than dividing by zero downstream.
		return Targets{BMR: int(c)}
	}

	bmr := math.Round(10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) + c)

	factor := activityFactors[0]
	if p.ActivityLevel >= 0 && p.ActivityLevel < len(activityFactors) {
		factor = activityFactors[p.ActivityLevel]
	}
	maintenance := int(bmr * factor)

	delta := p.WeeklyRateG * kcalPerGram / 7
	goal := float64(maintenance)
	switch p.Goal {
	case models.GoalLoss:
		goal -= delta
	case models.GoalGain:
		goal += delta
	}

	final := int(goal)
	if p.OverrideCalories > 0 {
		final = p.OverrideCalories
	}

	t := Targets{
		BMR:         int(bmr),
		Maintenance: maintenance,
		Goal:        int(goal),
		Final:       final,
	}

	if p.DietPreset == models.PresetCustom {
		proteinG := p.ProteinPerKg * p.WeightKg
		carbsG := p.CarbsPerKg * p.WeightKg
		fatG := p.FatPerKg * p.WeightKg
		t.ProteinG = int(math.Round(proteinG))
		t.CarbsG = int(math.Round(carbsG))
		t.FatG = int(math.Round(fatG))
		if total := 4*proteinG + 4*carbsG + 9*fatG; total > 0 {
			t.ProteinPct = 4 * proteinG / total
			t.CarbsPct = 4 * carbsG / total
			t.FatPct = 9 * fatG / total
		}
		return t
	}

	split, ok := macroPresets[p.DietPreset]
	if !ok {
		split = macroPresets[models.PresetBalanced]
	}
	t.ProteinPct, t.CarbsPct, t.FatPct = split[0], split[1], split[2]
	t.ProteinG = int(math.Round(float64(final) * split[0] / 4))
	t.CarbsG = int(math.Round(float64(final) * split[1] / 4))
	t.FatG = int(math.Round(float64(final) * split[2] / 9))
	return t
}

// Nutrient status relative to target, consumed by the GUI for coloring.
const (
	StatusLow    = "low"
	StatusMedium = "medium"
	StatusGood   = "good"
	StatusOver   = "over"
)

// NutrientStatus classifies a consumed value against its target. A missing
// or zero target reads as low.
func NutrientStatus(value, target float64) string {
	if target <= 0 {
		return StatusLow
	}
	switch ratio := value / target; {
	case ratio > 1.05:
		return StatusOver
	case ratio >= 0.95:
		return StatusGood
	case ratio >= 0.5:
		return StatusMedium
	default:
		return StatusLow
	}
}
