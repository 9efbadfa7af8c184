package models

// MealMultiplier scales a meal's ingredients for the shopping aggregator
// only; nutrition totals never see it. A meal without a row behaves as
// (×1, not prepared).
type MealMultiplier struct {
	MealID            uint `gorm:"primaryKey;autoIncrement:false"`
	Multiplier        int  `gorm:"default:1"`
	IgnoreForShopping bool `gorm:"default:false"` // "already prepared"
}
