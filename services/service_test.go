package services

import (
	"fmt"
	"math"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/config"
)

// newTestDB opens a private in-memory database per test. The shared-cache
// name keeps gorm's pooled connections on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fixtureCatalog seeds a small catalog and returns name → id.
func fixtureCatalog(t *testing.T, db *gorm.DB) map[string]uint {
	t.Helper()
	catalog := NewCatalogService(db, nil, nil)
	foods := []FoodAttrs{
		{Name: "Chicken", Store: "Butcher", Category: "Meat", Calories: 120, Protein: 22.5, Carbs: 0, Fat: 3, PricePerKg: 9},
		{Name: "Rice", Store: "Market", Category: "Grains", Calories: 356, Protein: 7, Carbs: 78, Fat: 0.8, PricePerKg: 2},
		{Name: "Broccoli", Store: "Market", Category: "Vegetables", Calories: 34, Protein: 2.8, Carbs: 4.4, Fat: 0.4, PricePerKg: 3},
	}
	ids := make(map[string]uint, len(foods))
	for _, f := range foods {
		id, err := catalog.AddFood(f)
		if err != nil {
			t.Fatalf("seed food %s: %v", f.Name, err)
		}
		ids[f.Name] = id
	}
	return ids
}
