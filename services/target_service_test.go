package services

import (
	"testing"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

func baseProfile() models.UserProfile {
	return models.UserProfile{
		Sex:           models.SexMale,
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalMaintenance,
		DietPreset:    models.PresetBalanced,
	}
}

func TestComputeTargetsBalancedMaintenance(t *testing.T) {
	got := ComputeTargets(baseProfile())

	if got.BMR != 1649 {
		t.Errorf("BMR = %d, want 1649", got.BMR)
	}
	if got.Maintenance != 2555 {
		t.Errorf("maintenance = %d, want 2555", got.Maintenance)
	}
	if got.Final != 2555 {
		t.Errorf("final = %d, want 2555", got.Final)
	}
	if got.ProteinG != 192 {
		t.Errorf("protein = %d g, want 192", got.ProteinG)
	}
	if got.CarbsG != 256 {
		t.Errorf("carbs = %d g, want 256", got.CarbsG)
	}
	if got.FatG != 85 {
		t.Errorf("fat = %d g, want 85", got.FatG)
	}
	if !almostEqual(got.ProteinPct, 0.30) || !almostEqual(got.CarbsPct, 0.40) || !almostEqual(got.FatPct, 0.30) {
		t.Errorf("percentages = %v/%v/%v, want 0.30/0.40/0.30", got.ProteinPct, got.CarbsPct, got.FatPct)
	}
}

func TestComputeTargetsGoalAdjustment(t *testing.T) {
	p := baseProfile()
	p.Goal = models.GoalLoss
	p.WeeklyRateG = 500

	got := ComputeTargets(p)
	if got.Goal != 2005 {
		t.Errorf("loss goal calories = %d, want 2005", got.Goal)
	}
	if got.Final != 2005 {
		t.Errorf("loss final calories = %d, want 2005", got.Final)
	}

	p.Goal = models.GoalGain
	got = ComputeTargets(p)
	if got.Final != 3105 {
		t.Errorf("gain final calories = %d, want 3105", got.Final)
	}
}

func TestComputeTargetsOverrideWins(t *testing.T) {
	p := baseProfile()
	p.Goal = models.GoalLoss
	p.WeeklyRateG = 500
	p.OverrideCalories = 1800

	got := ComputeTargets(p)
	if got.Final != 1800 {
		t.Errorf("final = %d, want override 1800", got.Final)
	}
	if got.Goal != 2005 {
		t.Errorf("goal = %d, want 2005 despite override", got.Goal)
	}
}

func TestComputeTargetsZeroWeight(t *testing.T) {
	p := baseProfile()
	p.WeightKg = 0

	got := ComputeTargets(p)
	if got.BMR != 5 {
		t.Errorf("male zero-weight BMR = %d, want 5", got.BMR)
	}
	if got.Final != 0 || got.ProteinG != 0 || got.CarbsG != 0 || got.FatG != 0 {
		t.Errorf("zero-weight targets = %+v, want zero budget", got)
	}

	p.Sex = models.SexFemale
	got = ComputeTargets(p)
	if got.BMR != -161 {
		t.Errorf("female zero-weight BMR = %d, want -161", got.BMR)
	}
}

func TestComputeTargetsCustomPreset(t *testing.T) {
	p := baseProfile()
	p.DietPreset = models.PresetCustom
	p.ProteinPerKg = 2   // 140 g
	p.CarbsPerKg = 4     // 280 g
	p.FatPerKg = 1       // 70 g

	got := ComputeTargets(p)
	if got.ProteinG != 140 || got.CarbsG != 280 || got.FatG != 70 {
		t.Errorf("custom grams = %d/%d/%d, want 140/280/70", got.ProteinG, got.CarbsG, got.FatG)
	}
	// 4·140 + 4·280 + 9·70 = 2310 kcal from macros
	if !almostEqual(got.ProteinPct, 560.0/2310) {
		t.Errorf("custom protein pct = %v, want %v", got.ProteinPct, 560.0/2310)
	}
	if !almostEqual(got.FatPct, 630.0/2310) {
		t.Errorf("custom fat pct = %v, want %v", got.FatPct, 630.0/2310)
	}
	// Calorie budget still follows the goal engine, not the custom macros.
	if got.Final != 2555 {
		t.Errorf("custom final = %d, want 2555", got.Final)
	}
}

func TestNutrientStatus(t *testing.T) {
	cases := []struct {
		name   string
		value  float64
		target float64
		want   string
	}{
		{"zero target", 100, 0, StatusLow},
		{"far under", 40, 100, StatusLow},
		{"half", 50, 100, StatusMedium},
		{"slightly under", 94, 100, StatusMedium},
		{"lower bound good", 95, 100, StatusGood},
		{"exact", 100, 100, StatusGood},
		{"upper bound good", 105, 100, StatusGood},
		{"over", 106, 100, StatusOver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NutrientStatus(tc.value, tc.target); got != tc.want {
				t.Errorf("NutrientStatus(%v, %v) = %s, want %s", tc.value, tc.target, got, tc.want)
			}
		})
	}
}
