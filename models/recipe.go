package models

import "gorm.io/gorm"

// Recipe is a reusable meal template. It is never scheduled itself; the
// planner instantiates it into a Meal.
type Recipe struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	CategoryID  *uint
	Portions    int
	PrepTime    int // minutes
	CookTime    int // minutes
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

type RecipeIngredient struct {
	gorm.Model
	RecipeID uint `gorm:"index;not null"`
	FoodID   uint `gorm:"not null"`
	Food     Food
	Grams    float64
}
