package models

import "gorm.io/gorm"

// MealCategory is an optional grouping for recipes, with a display color.
type MealCategory struct {
	gorm.Model
	Name  string `gorm:"not null"`
	Color string
}
