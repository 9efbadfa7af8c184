package models

// ShoppingChecked records the "bought" tick for a food within a week's
// shopping list. Orthogonal to aggregation: the aggregator never reads it.
// No gorm.Model here: rows are deleted for real when the week or food goes
// away, so a reused week id starts with a clean slate under the unique
// index.
type ShoppingChecked struct {
	ID      uint `gorm:"primaryKey"`
	WeekID  uint `gorm:"not null;uniqueIndex:idx_checked_week_food"`
	FoodID  uint `gorm:"not null;uniqueIndex:idx_checked_week_food"`
	Checked bool
}
