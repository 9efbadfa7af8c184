package models

import "gorm.io/gorm"

// ComposedFood is a named ingredient list exposed in the catalog as a single
// selectable item. Its per-100g values are derived from the ingredients.
type ComposedFood struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	Category    string
	Ingredients []ComposedFoodIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

type ComposedFoodIngredient struct {
	gorm.Model
	ComposedFoodID uint `gorm:"index;not null"`
	FoodID         uint `gorm:"not null"`
	Food           Food
	Grams          float64
}
