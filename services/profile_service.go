package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/utils"
)

// ProfileService owns the single user profile row. The first read creates
// it with defaults; every save refreshes the cached targets.
type ProfileService struct {
	db  *gorm.DB
	hub *EventHub
}

func NewProfileService(db *gorm.DB, hub *EventHub) *ProfileService {
	return &ProfileService{db: db, hub: hub}
}

func defaultProfile() models.UserProfile {
	return models.UserProfile{
		Sex:           models.SexMale,
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalMaintenance,
		DietPreset:    models.PresetBalanced,
		ProteinPerKg:  1.8,
		CarbsPerKg:    4,
		FatPerKg:      1,
		ActiveTheme:   "light",
	}
}

// ProfileView wraps the stored row with the derived targets and BMI.
type ProfileView struct {
	models.UserProfile
	Targets     Targets `json:"targets"`
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
}

func (s *ProfileService) view(p models.UserProfile) *ProfileView {
	v := &ProfileView{UserProfile: p, Targets: ComputeTargets(p)}
	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		v.BMI = bmi
		v.BMICategory = utils.BMICategory(bmi)
	}
	return v
}

// Get returns the profile, creating the default row on first use.
func (s *ProfileService) Get() (*ProfileView, error) {
	var p models.UserProfile
	err := s.db.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = defaultProfile()
		if err := s.db.Create(&p).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

type ProfileAttrs struct {
	Name             string  `json:"name"`
	Sex              string  `json:"sex"`
	Age              int     `json:"age"`
	HeightCm         float64 `json:"height_cm"`
	WeightKg         float64 `json:"weight_kg"`
	ActivityLevel    int     `json:"activity_level"`
	Goal             string  `json:"goal"`
	WeeklyRateG      float64 `json:"weekly_rate_g"`
	OverrideCalories int     `json:"override_calories"`
	DietPreset       string  `json:"diet_preset"`
	ProteinPerKg     float64 `json:"protein_per_kg"`
	CarbsPerKg       float64 `json:"carbs_per_kg"`
	FatPerKg         float64 `json:"fat_per_kg"`
	ActiveTheme      string  `json:"active_theme"`
}

func (a ProfileAttrs) validate() error {
	switch a.Sex {
	case models.SexMale, models.SexFemale:
	default:
		return invalidf("unknown sex %q", a.Sex)
	}
	switch a.Goal {
	case models.GoalMaintenance, models.GoalLoss, models.GoalGain:
	default:
		return invalidf("unknown goal %q", a.Goal)
	}
	if a.ActivityLevel < 0 || a.ActivityLevel >= len(activityFactors) {
		return invalidf("activity level %d out of range", a.ActivityLevel)
	}
	if a.DietPreset != models.PresetCustom {
		if _, ok := macroPresets[a.DietPreset]; !ok {
			return invalidf("unknown diet preset %q", a.DietPreset)
		}
	}
	if a.Age < 0 || a.HeightCm < 0 || a.WeightKg < 0 || a.WeeklyRateG < 0 ||
		a.OverrideCalories < 0 || a.ProteinPerKg < 0 || a.CarbsPerKg < 0 || a.FatPerKg < 0 {
		return invalidf("profile values must not be negative")
	}
	return nil
}

// Update mutates the profile in place and refreshes the cached targets.
func (s *ProfileService) Update(attrs ProfileAttrs) (*ProfileView, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	var p models.UserProfile
	err := s.db.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = defaultProfile()
	} else if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(attrs.Name)
	p.Sex = attrs.Sex
	p.Age = attrs.Age
	p.HeightCm = attrs.HeightCm
	p.WeightKg = attrs.WeightKg
	p.ActivityLevel = attrs.ActivityLevel
	p.Goal = attrs.Goal
	p.WeeklyRateG = attrs.WeeklyRateG
	p.OverrideCalories = attrs.OverrideCalories
	p.DietPreset = attrs.DietPreset
	p.ProteinPerKg = attrs.ProteinPerKg
	p.CarbsPerKg = attrs.CarbsPerKg
	p.FatPerKg = attrs.FatPerKg
	if attrs.ActiveTheme != "" {
		p.ActiveTheme = attrs.ActiveTheme
	}

	t := ComputeTargets(p)
	p.TargetCalories = t.Final
	p.TargetProtein = t.ProteinG
	p.TargetCarbs = t.CarbsG
	p.TargetFat = t.FatG

	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(EventProfileChanged, map[string]any{"id": p.ID})
	return s.view(p), nil
}
