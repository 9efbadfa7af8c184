package models

import "gorm.io/gorm"

// Days are stored as ordinals 0..6, Monday = 0. The GUI translates to
// localized names at its edge.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Meal is one scheduled eating occasion at (week, day, ordinal).
type Meal struct {
	gorm.Model
	Name           string
	Day            int  `gorm:"index;not null"`
	Ordinal        int  `gorm:"not null"` // position within the day, 1-based
	WeekID         uint `gorm:"index;not null"`
	SourceRecipeID *uint
	Ingredients    []MealIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

// MealIngredient holds a concrete quantity of a catalog food. Modified is
// set when the user edits the grams after the meal was instantiated from a
// recipe; it survives export/import.
type MealIngredient struct {
	gorm.Model
	MealID   uint `gorm:"index;not null"`
	FoodID   uint `gorm:"not null"`
	Food     Food
	Grams    float64
	Modified bool
}
