package models

import "gorm.io/gorm"

// A user-curated catalog entry. All nutrient columns are per 100 g.
type Food struct {
	gorm.Model
	Name       string `gorm:"not null;index"`
	Brand      string
	Store      string
	Category   string
	Calories   float64 // kcal
	Protein    float64 // g
	Carbs      float64 // g
	Fat        float64 // g
	Fiber      float64 // g
	PricePerKg float64
}

// MacroCalories is the energy implied by the declared macros
// (4 kcal/g protein and carbs, 9 kcal/g fat).
func (f *Food) MacroCalories() float64 {
	return 4*f.Protein + 4*f.Carbs + 9*f.Fat
}

// CalorieMismatch reports whether the declared calories deviate from the
// macro-implied calories by more than 5%. Computed on read, never stored.
func (f *Food) CalorieMismatch() bool {
	implied := f.MacroCalories()
	if f.Calories <= 0 {
		return implied > 0
	}
	dev := f.Calories - implied
	if dev < 0 {
		dev = -dev
	}
	return dev/f.Calories > 0.05
}
