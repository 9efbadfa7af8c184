package services

import (
	"reflect"
	"testing"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// Export → Import into a fresh store → Export again must reproduce the
// same envelope; ids are renumbered but the envelope never carries them.
func TestExportImportRoundTrip(t *testing.T) {
	src := newTestDB(t)
	recipes := NewRecipeService(src, nil, nil)
	planner := NewPlannerService(src, nil, nil)
	ids := fixtureCatalog(t, src)

	recipeID, err := recipes.AddRecipe(RecipeAttrs{Name: "Chicken rice", Description: "weeknight staple"})
	if err != nil {
		t.Fatalf("add recipe: %v", err)
	}
	recipes.AddIngredient(recipeID, ids["Chicken"], 150)
	recipes.AddIngredient(recipeID, ids["Rice"], 80)

	weekID, _ := planner.CreateWeek()
	mealID, err := recipes.ApplyToMealSlot(recipeID, weekID, models.Monday, 1, nil, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// A manual tweak whose flag must survive the round trip.
	if err := planner.UpdateMealIngredientGrams(mealID, ids["Rice"], 100); err != nil {
		t.Fatalf("edit: %v", err)
	}

	exported, err := NewExportService(src, nil).Export(weekID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestDB(t)
	importer := NewExportService(dst, nil)
	newWeekID, err := importer.Import(exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if newWeekID == 0 {
		t.Fatal("planning import should create a week")
	}

	reexported, err := importer.Export(newWeekID)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if !reflect.DeepEqual(exported, reexported) {
		t.Errorf("round trip diverged:\nfirst  %+v\nsecond %+v", exported, reexported)
	}

	// The modified flag came through.
	lundi := reexported.Planning["Lundi"]
	if len(lundi) != 1 {
		t.Fatalf("Monday has %d meals, want 1", len(lundi))
	}
	found := false
	for _, in := range lundi[0].Aliments {
		if in.Name == "Rice" {
			found = true
			if !in.Modified || !almostEqual(in.Grams, 100) {
				t.Errorf("rice after round trip = %+v, want 100 g modified", in)
			}
		}
	}
	if !found {
		t.Error("rice missing from round-tripped meal")
	}
}

func TestImportUpsertsFoodsByNameAndBrand(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	importer := NewExportService(db, nil)

	if _, err := catalog.AddFood(FoodAttrs{Name: "Oats", Brand: "Bio", Calories: 380}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	env := &Envelope{Aliments: []FoodExport{
		{Name: "Oats", Brand: "Bio", Calories: 370},   // update in place
		{Name: "Oats", Brand: "Other", Calories: 390}, // distinct brand, new row
	}}
	if _, err := importer.Import(env); err != nil {
		t.Fatalf("import: %v", err)
	}

	foods, err := catalog.ListFoods(FoodFilter{Search: "oats"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("catalog has %d oats, want 2", len(foods))
	}
	for _, f := range foods {
		if f.Brand == "Bio" && f.Calories != 370 {
			t.Errorf("Bio oats = %v kcal, want updated 370", f.Calories)
		}
	}
}

// Matching folds accents and case like catalog search, so an unaccented
// re-import updates the accented row instead of duplicating it.
func TestImportMatchesFoodsAccentInsensitively(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	importer := NewExportService(db, nil)

	if _, err := catalog.AddFood(FoodAttrs{Name: "Épinards", Brand: "Bio", Calories: 23}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	env := &Envelope{Aliments: []FoodExport{
		{Name: "epinards", Brand: "bio", Calories: 25},
	}}
	if _, err := importer.Import(env); err != nil {
		t.Fatalf("import: %v", err)
	}

	foods, err := catalog.ListFoods(FoodFilter{Search: "epinards"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("catalog has %d spinach rows, want 1 updated in place", len(foods))
	}
	if foods[0].Calories != 25 {
		t.Errorf("spinach = %v kcal, want updated 25", foods[0].Calories)
	}
}

func TestImportUnknownIngredientFailsWholesale(t *testing.T) {
	db := newTestDB(t)
	importer := NewExportService(db, nil)

	env := &Envelope{RepasTypes: []RecipeExport{{
		Name:     "Ghost",
		Aliments: []IngredientExport{{Name: "Nonexistent", Grams: 50}},
	}}}
	if _, err := importer.Import(env); err == nil {
		t.Fatal("import referencing an unknown food should fail")
	}

	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	if count != 0 {
		t.Errorf("failed import left %d recipes behind, want rollback", count)
	}
}
