package services

import (
	"reflect"
	"testing"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// Scenario: meal 1 {chicken 150, rice 80} ×2, meal 2 {chicken 100,
// broccoli 100} already prepared. Only meal 1 contributes, doubled.
func TestAggregateAppliesMultipliersAndSkipsPrepared(t *testing.T) {
	db := newTestDB(t)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)
	ids := fixtureCatalog(t, db)
	weekID, _ := planner.CreateWeek()

	meal1, _ := planner.AddMeal(weekID, models.Monday, "Meal 1", nil)
	planner.AddFoodToMeal(meal1, ids["Chicken"], 150, false)
	planner.AddFoodToMeal(meal1, ids["Rice"], 80, false)
	if err := planner.SetMealMultiplier(meal1, 2, false); err != nil {
		t.Fatalf("set multiplier: %v", err)
	}

	meal2, _ := planner.AddMeal(weekID, models.Tuesday, "Meal 2", nil)
	planner.AddFoodToMeal(meal2, ids["Chicken"], 100, false)
	planner.AddFoodToMeal(meal2, ids["Broccoli"], 100, false)
	if err := planner.SetMealMultiplier(meal2, 1, true); err != nil {
		t.Fatalf("mark prepared: %v", err)
	}

	got, err := shopping.Aggregate(weekID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	items := map[uint]float64{}
	for _, store := range got {
		for _, cat := range store.Categories {
			for _, item := range cat.Items {
				items[item.FoodID] = item.TotalGrams
			}
		}
	}
	if len(items) != 2 {
		t.Fatalf("aggregated %d foods, want 2 (prepared meal skipped)", len(items))
	}
	if !almostEqual(items[ids["Chicken"]], 300) {
		t.Errorf("chicken = %v g, want 300", items[ids["Chicken"]])
	}
	if !almostEqual(items[ids["Rice"]], 160) {
		t.Errorf("rice = %v g, want 160", items[ids["Rice"]])
	}

	// Grouping: Butcher before Market, alphabetically.
	if len(got) != 2 || got[0].Store != "Butcher" || got[1].Store != "Market" {
		t.Errorf("store order = %+v, want Butcher then Market", got)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	db := newTestDB(t)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)
	ids := fixtureCatalog(t, db)
	weekID, _ := planner.CreateWeek()
	mealID, _ := planner.AddMeal(weekID, models.Monday, "Lunch", nil)
	planner.AddFoodToMeal(mealID, ids["Rice"], 80, false)
	planner.AddFoodToMeal(mealID, ids["Broccoli"], 120, false)
	planner.AddFoodToMeal(mealID, ids["Chicken"], 150, false)

	first, err := shopping.Aggregate(weekID)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := shopping.Aggregate(weekID)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over an unchanged plan should be identical")
	}
}

// Two foods with the same name (different brands) in one store/category
// bucket must still come back in a stable order.
func TestAggregateOrdersSameNameItemsByID(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)

	a, err := catalog.AddFood(FoodAttrs{Name: "Yogurt", Brand: "Bio", Store: "Market", Category: "Dairy"})
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	b, err := catalog.AddFood(FoodAttrs{Name: "Yogurt", Brand: "Danone", Store: "Market", Category: "Dairy"})
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	weekID, _ := planner.CreateWeek()
	mealID, _ := planner.AddMeal(weekID, models.Monday, "Breakfast", nil)
	planner.AddFoodToMeal(mealID, b, 125, false)
	planner.AddFoodToMeal(mealID, a, 125, false)

	for run := 0; run < 3; run++ {
		got, err := shopping.Aggregate(weekID)
		if err != nil {
			t.Fatalf("aggregate run %d: %v", run, err)
		}
		items := got[0].Categories[0].Items
		if len(items) != 2 || items[0].FoodID != a || items[1].FoodID != b {
			t.Fatalf("run %d item order = %+v, want food %d before %d", run, items, a, b)
		}
	}
}

func TestAggregateEmptyWeek(t *testing.T) {
	db := newTestDB(t)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)
	weekID, _ := planner.CreateWeek()

	got, err := shopping.Aggregate(weekID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty week aggregated to %+v, want nothing", got)
	}
}

func TestAggregateBucketsMissingStoreAndCategory(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)

	foodID, err := catalog.AddFood(FoodAttrs{Name: "Mystery"})
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	weekID, _ := planner.CreateWeek()
	mealID, _ := planner.AddMeal(weekID, models.Monday, "Lunch", nil)
	planner.AddFoodToMeal(mealID, foodID, 100, false)

	got, err := shopping.Aggregate(weekID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(got) != 1 || got[0].Store != NoStore {
		t.Fatalf("store bucket = %+v, want %q", got, NoStore)
	}
	if got[0].Categories[0].Category != NoCategory {
		t.Errorf("category bucket = %q, want %q", got[0].Categories[0].Category, NoCategory)
	}
}

func TestCheckedStateLifecycle(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)
	ids := fixtureCatalog(t, db)
	weekID, _ := planner.CreateWeek()

	if err := shopping.SetChecked(weekID, ids["Rice"], true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	if err := shopping.SetChecked(weekID, ids["Chicken"], true); err != nil {
		t.Fatalf("set checked: %v", err)
	}

	checked, err := shopping.ListChecked(weekID)
	if err != nil {
		t.Fatalf("list checked: %v", err)
	}
	if len(checked) != 2 {
		t.Fatalf("checked = %v, want 2 foods", checked)
	}

	// Unticking is an update, not a duplicate row.
	if err := shopping.SetChecked(weekID, ids["Rice"], false); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	checked, _ = shopping.ListChecked(weekID)
	if len(checked) != 1 || checked[0] != ids["Chicken"] {
		t.Errorf("checked = %v, want only chicken", checked)
	}

	// Deleting the food clears its mark; deleting the week clears the rest.
	if _, err := catalog.DeleteFood(ids["Chicken"]); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	checked, _ = shopping.ListChecked(weekID)
	if len(checked) != 0 {
		t.Errorf("checked after food delete = %v, want none", checked)
	}

	if err := planner.DeleteWeek(weekID); err != nil {
		t.Fatalf("delete week: %v", err)
	}
	var rows []models.ShoppingChecked
	if err := db.Where("week_id = ?", weekID).Find(&rows).Error; err != nil {
		t.Fatalf("query checked rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("%d checked rows survive week deletion", len(rows))
	}
}

// Week ids are reused after deletion, so the checked marks of a dead week
// must not haunt its successor.
func TestCheckedStateSurvivesWeekIDReuse(t *testing.T) {
	db := newTestDB(t)
	planner := NewPlannerService(db, nil, nil)
	shopping := NewShoppingService(db)
	ids := fixtureCatalog(t, db)

	weekID, _ := planner.CreateWeek()
	if err := shopping.SetChecked(weekID, ids["Rice"], true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	if err := planner.DeleteWeek(weekID); err != nil {
		t.Fatalf("delete week: %v", err)
	}

	reused, _ := planner.CreateWeek()
	if reused != weekID {
		t.Fatalf("recreated week id = %d, want %d reused", reused, weekID)
	}
	if err := shopping.SetChecked(reused, ids["Rice"], true); err != nil {
		t.Fatalf("set checked in recreated week: %v", err)
	}
	checked, err := shopping.ListChecked(reused)
	if err != nil {
		t.Fatalf("list checked: %v", err)
	}
	if len(checked) != 1 || checked[0] != ids["Rice"] {
		t.Errorf("checked = %v, want only rice", checked)
	}
}
