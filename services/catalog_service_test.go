package services

import (
	"errors"
	"testing"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

func TestAddFoodValidation(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)

	if _, err := catalog.AddFood(FoodAttrs{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: err = %v, want ErrInvalidInput", err)
	}
	if _, err := catalog.AddFood(FoodAttrs{Name: "Oats", Protein: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative nutrient: err = %v, want ErrInvalidInput", err)
	}
	if _, err := catalog.AddFood(FoodAttrs{Name: "Oats", Calories: 380, Protein: 13, Carbs: 68, Fat: 7}); err != nil {
		t.Errorf("valid food: err = %v", err)
	}
}

func TestSearchAccentAndCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	for _, name := range []string{"Épinards", "Poulet"} {
		if _, err := catalog.AddFood(FoodAttrs{Name: name}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"ep", []string{"Épinards"}},
		{"POUL", []string{"Poulet"}},
		{"xyz", nil},
	}
	for _, tc := range cases {
		got, err := catalog.ListFoods(FoodFilter{Search: tc.query})
		if err != nil {
			t.Fatalf("search %q: %v", tc.query, err)
		}
		if len(got) != len(tc.want) {
			t.Errorf("search %q returned %d foods, want %d", tc.query, len(got), len(tc.want))
			continue
		}
		for i, f := range got {
			if f.Name != tc.want[i] {
				t.Errorf("search %q[%d] = %s, want %s", tc.query, i, f.Name, tc.want[i])
			}
		}
	}
}

func TestListFoodsSorting(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	seed := []FoodAttrs{
		{Name: "Banane", Calories: 89},
		{Name: "Avoine", Calories: 380},
		{Name: "Éclair", Calories: 260},
	}
	for _, f := range seed {
		if _, err := catalog.AddFood(f); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	byName, err := catalog.ListFoods(FoodFilter{SortBy: "name", Ascending: true})
	if err != nil {
		t.Fatalf("sort by name: %v", err)
	}
	wantNames := []string{"Avoine", "Banane", "Éclair"}
	for i, f := range byName {
		if f.Name != wantNames[i] {
			t.Errorf("name sort[%d] = %s, want %s", i, f.Name, wantNames[i])
		}
	}

	byCal, err := catalog.ListFoods(FoodFilter{SortBy: "calories", Ascending: false})
	if err != nil {
		t.Fatalf("sort by calories: %v", err)
	}
	wantCal := []float64{380, 260, 89}
	for i, f := range byCal {
		if f.Calories != wantCal[i] {
			t.Errorf("calorie sort[%d] = %v, want %v", i, f.Calories, wantCal[i])
		}
	}

	if _, err := catalog.ListFoods(FoodFilter{SortBy: "nope"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown sort column: err = %v, want ErrInvalidInput", err)
	}
}

func TestDistinctOrdersByFrequency(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	brands := []string{"Bio", "Bio", "Bio", "Carrefour", "Carrefour", ""}
	for i, b := range brands {
		if _, err := catalog.AddFood(FoodAttrs{Name: "F", Brand: b, Category: "C"}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	got, err := catalog.Distinct("brand")
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	want := []string{"Bio", "Carrefour"}
	if len(got) != len(want) {
		t.Fatalf("distinct = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("distinct[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if _, err := catalog.Distinct("name"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("distinct on name: err = %v, want ErrInvalidInput", err)
	}
}

func TestCalorieMismatchFlaggedOnRead(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)

	// Declared 500 kcal vs 4·10+4·10+9·10 = 170 implied: flagged.
	id, err := catalog.AddFood(FoodAttrs{Name: "Mystery bar", Calories: 500, Protein: 10, Carbs: 10, Fat: 10})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := catalog.GetFood(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Inconsistent {
		t.Error("expected inconsistency flag on divergent food")
	}

	// 170 declared matches exactly: not flagged. The write was never blocked.
	id2, err := catalog.AddFood(FoodAttrs{Name: "Honest bar", Calories: 170, Protein: 10, Carbs: 10, Fat: 10})
	if err != nil {
		t.Fatalf("add consistent: %v", err)
	}
	got2, err := catalog.GetFood(id2)
	if err != nil {
		t.Fatalf("get consistent: %v", err)
	}
	if got2.Inconsistent {
		t.Error("consistent food should not be flagged")
	}
}

// Deleting a food severs it from recipes, meals and composed foods while
// leaving those parents alive.
func TestDeleteFoodCascades(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, nil, nil)
	recipes := NewRecipeService(db, nil, nil)
	planner := NewPlannerService(db, nil, nil)
	composed := NewComposedService(db, nil)
	ids := fixtureCatalog(t, db)

	recipeID, err := recipes.AddRecipe(RecipeAttrs{Name: "Chicken rice"})
	if err != nil {
		t.Fatalf("add recipe: %v", err)
	}
	if err := recipes.AddIngredient(recipeID, ids["Chicken"], 150); err != nil {
		t.Fatalf("add recipe ingredient: %v", err)
	}
	if err := recipes.AddIngredient(recipeID, ids["Rice"], 80); err != nil {
		t.Fatalf("add recipe ingredient: %v", err)
	}

	weekID, err := planner.CreateWeek()
	if err != nil {
		t.Fatalf("create week: %v", err)
	}
	mealID, err := planner.AddMeal(weekID, models.Monday, "Lunch", nil)
	if err != nil {
		t.Fatalf("add meal: %v", err)
	}
	if err := planner.AddFoodToMeal(mealID, ids["Chicken"], 100, false); err != nil {
		t.Fatalf("add meal food: %v", err)
	}
	if err := planner.AddFoodToMeal(mealID, ids["Broccoli"], 100, false); err != nil {
		t.Fatalf("add meal food: %v", err)
	}

	composedID, err := composed.AddComposed("Chicken mix", "", "", []IngredientInput{
		{FoodID: ids["Chicken"], Grams: 200},
		{FoodID: ids["Rice"], Grams: 100},
	})
	if err != nil {
		t.Fatalf("add composed: %v", err)
	}

	existed, err := catalog.DeleteFood(ids["Chicken"])
	if err != nil {
		t.Fatalf("delete food: %v", err)
	}
	if !existed {
		t.Fatal("delete should report the food existed")
	}

	recipe, err := recipes.GetRecipe(recipeID)
	if err != nil {
		t.Fatalf("recipe should survive: %v", err)
	}
	for _, in := range recipe.Ingredients {
		if in.FoodID == ids["Chicken"] {
			t.Error("recipe still references the deleted food")
		}
	}

	week, err := planner.GetWeek(weekID)
	if err != nil {
		t.Fatalf("week should survive: %v", err)
	}
	for _, meal := range week.Days[models.Monday] {
		for _, in := range meal.Ingredients {
			if in.FoodID == ids["Chicken"] {
				t.Error("meal still references the deleted food")
			}
		}
	}

	cf, err := composed.GetComposed(composedID)
	if err != nil {
		t.Fatalf("composed food should survive: %v", err)
	}
	for _, in := range cf.Ingredients {
		if in.FoodID == ids["Chicken"] {
			t.Error("composed food still references the deleted food")
		}
	}

	again, err := catalog.DeleteFood(ids["Chicken"])
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if again {
		t.Error("second delete should report the food as missing")
	}
}
