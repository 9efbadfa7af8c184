package services

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// RecipeService owns the book of reusable meal templates.
type RecipeService struct {
	db  *gorm.DB
	log *logrus.Logger
	hub *EventHub
}

func NewRecipeService(db *gorm.DB, log *logrus.Logger, hub *EventHub) *RecipeService {
	return &RecipeService{db: db, log: log, hub: hub}
}

type RecipeAttrs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id,omitempty"`
	Portions    int    `json:"portions"`
	PrepTime    int    `json:"prep_time"`
	CookTime    int    `json:"cook_time"`
}

func (s *RecipeService) AddRecipe(attrs RecipeAttrs) (uint, error) {
	if strings.TrimSpace(attrs.Name) == "" {
		return 0, invalidf("recipe name is empty")
	}
	r := models.Recipe{
		Name:        strings.TrimSpace(attrs.Name),
		Description: attrs.Description,
		CategoryID:  attrs.CategoryID,
		Portions:    attrs.Portions,
		PrepTime:    attrs.PrepTime,
		CookTime:    attrs.CookTime,
	}
	if err := s.db.Create(&r).Error; err != nil {
		return 0, err
	}
	s.hub.Publish(EventRecipeChanged, map[string]any{"id": r.ID})
	return r.ID, nil
}

func (s *RecipeService) UpdateRecipe(id uint, attrs RecipeAttrs) error {
	if strings.TrimSpace(attrs.Name) == "" {
		return invalidf("recipe name is empty")
	}
	var r models.Recipe
	if err := s.db.First(&r, id).Error; err != nil {
		return translate(err, "recipe", id)
	}
	r.Name = strings.TrimSpace(attrs.Name)
	r.Description = attrs.Description
	r.CategoryID = attrs.CategoryID
	r.Portions = attrs.Portions
	r.PrepTime = attrs.PrepTime
	r.CookTime = attrs.CookTime
	if err := s.db.Save(&r).Error; err != nil {
		return err
	}
	s.hub.Publish(EventRecipeChanged, map[string]any{"id": id})
	return nil
}

// DeleteRecipe cascades to the recipe's ingredient rows. Meals that were
// instantiated from it keep their ingredients and lose the backlink.
func (s *RecipeService) DeleteRecipe(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.First(&r, id).Error; err != nil {
			return translate(err, "recipe", id)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Meal{}).Where("source_recipe_id = ?", id).
			Update("source_recipe_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&r).Error
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventRecipeChanged, map[string]any{"id": id, "deleted": true})
	return nil
}

func (s *RecipeService) AddIngredient(recipeID, foodID uint, grams float64) error {
	if grams <= 0 {
		return invalidf("grams must be positive")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.First(&r, recipeID).Error; err != nil {
			return translate(err, "recipe", recipeID)
		}
		var food models.Food
		if err := tx.First(&food, foodID).Error; err != nil {
			return translate(err, "food", foodID)
		}
		row := models.RecipeIngredient{RecipeID: recipeID, FoodID: foodID, Grams: grams}
		return tx.Create(&row).Error
	})
}

func (s *RecipeService) UpdateIngredientGrams(recipeID, foodID uint, grams float64) error {
	if grams <= 0 {
		return invalidf("grams must be positive")
	}
	res := s.db.Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND food_id = ?", recipeID, foodID).
		Update("grams", grams)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("recipe ingredient for food", foodID)
	}
	return nil
}

func (s *RecipeService) RemoveIngredient(recipeID, foodID uint) error {
	res := s.db.Where("recipe_id = ? AND food_id = ?", recipeID, foodID).
		Delete(&models.RecipeIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("recipe ingredient for food", foodID)
	}
	return nil
}

// RecipeView carries the template plus its derived totals: the linear sum
// of each ingredient's per-100g values scaled by grams/100.
type RecipeView struct {
	models.Recipe
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

func recipeView(r models.Recipe) RecipeView {
	v := RecipeView{Recipe: r}
	for _, in := range r.Ingredients {
		scale := in.Grams / 100
		v.TotalCalories += in.Food.Calories * scale
		v.TotalProtein += in.Food.Protein * scale
		v.TotalCarbs += in.Food.Carbs * scale
		v.TotalFat += in.Food.Fat * scale
	}
	return v
}

func (s *RecipeService) GetRecipe(id uint) (*RecipeView, error) {
	var r models.Recipe
	if err := s.db.Preload("Ingredients.Food").First(&r, id).Error; err != nil {
		return nil, translate(err, "recipe", id)
	}
	v := recipeView(r)
	return &v, nil
}

func (s *RecipeService) ListRecipes() ([]RecipeView, error) {
	var recipes []models.Recipe
	if err := s.db.Preload("Ingredients.Food").Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	out := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, recipeView(r))
	}
	return out, nil
}

// ApplyToMealSlot instantiates the recipe as a new meal at (week, day,
// ordinal). Each ingredient becomes a MealIngredient with modified=false;
// entries of scaleFactors (food id → positive multiplier) scale the grams
// of the listed ingredients. The meal keeps the recipe backlink so later
// edits can be propagated.
func (s *RecipeService) ApplyToMealSlot(recipeID, weekID uint, day, ordinal int, scaleFactors map[uint]float64, overrideName string) (uint, error) {
	for foodID, f := range scaleFactors {
		if f <= 0 {
			return 0, invalidf("scale factor for food %d must be positive", foodID)
		}
	}
	var mealID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.Preload("Ingredients").First(&r, recipeID).Error; err != nil {
			return translate(err, "recipe", recipeID)
		}
		name := r.Name
		if overrideName != "" {
			name = overrideName
		}
		var ord *int
		if ordinal > 0 {
			ord = &ordinal
		}
		src := recipeID
		meal, err := insertMealTx(tx, weekID, day, name, ord, &src)
		if err != nil {
			return err
		}
		mealID = meal.ID
		for _, in := range r.Ingredients {
			grams := in.Grams
			if f, ok := scaleFactors[in.FoodID]; ok {
				grams *= f
			}
			if err := addFoodToMealTx(tx, meal.ID, in.FoodID, grams, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID})
	return mealID, nil
}

// PropagateRecipeChange rewrites the ingredient list of every meal sourced
// from the recipe back to the template's current defaults. Manual per-meal
// edits are overwritten; the bulk refresh is deliberate.
func (s *RecipeService) PropagateRecipeChange(recipeID uint) (int, error) {
	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.Preload("Ingredients").First(&r, recipeID).Error; err != nil {
			return translate(err, "recipe", recipeID)
		}
		var mealIDs []uint
		if err := tx.Model(&models.Meal{}).Where("source_recipe_id = ?", recipeID).
			Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		for _, mealID := range mealIDs {
			if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealIngredient{}).Error; err != nil {
				return err
			}
			for _, in := range r.Ingredients {
				row := models.MealIngredient{MealID: mealID, FoodID: in.FoodID, Grams: in.Grams}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		count = len(mealIDs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"recipe_id": recipeID, "meals": count}).
			Info("recipe change propagated")
	}
	s.hub.Publish(EventRecipeChanged, map[string]any{"id": recipeID, "propagated": count})
	return count, nil
}

// Meal categories: optional recipe grouping with a display color.

func (s *RecipeService) AddCategory(name, color string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, invalidf("category name is empty")
	}
	c := models.MealCategory{Name: strings.TrimSpace(name), Color: color}
	if err := s.db.Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *RecipeService) ListCategories() ([]models.MealCategory, error) {
	var out []models.MealCategory
	err := s.db.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *RecipeService) DeleteCategory(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var c models.MealCategory
		if err := tx.First(&c, id).Error; err != nil {
			return translate(err, "meal category", id)
		}
		if err := tx.Model(&models.Recipe{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
	return err
}
