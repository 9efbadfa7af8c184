package models

// Week ids are user-visible small integers: CreateWeek allocates the
// smallest positive integer not currently in use, so no auto-increment.
type Week struct {
	ID          uint `gorm:"primaryKey;autoIncrement:false"`
	DisplayName string
	Meals       []Meal `gorm:"constraint:OnDelete:CASCADE"`
}
