package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// PlannerService owns weeks, meals and per-meal state. Within a (week, day)
// pair meal ordinals form a consecutive 1..N sequence once normalized.
type PlannerService struct {
	db  *gorm.DB
	log *logrus.Logger
	hub *EventHub
}

func NewPlannerService(db *gorm.DB, log *logrus.Logger, hub *EventHub) *PlannerService {
	return &PlannerService{db: db, log: log, hub: hub}
}

// CreateWeek allocates the smallest positive integer not currently used as
// a week id: with weeks {1,2,4} the next is 3.
func (s *PlannerService) CreateWeek() (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Week{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
			return err
		}
		next := uint(1)
		for _, existing := range ids {
			if existing != next {
				break
			}
			next++
		}
		id = next
		return tx.Create(&models.Week{ID: next}).Error
	})
	if err != nil {
		return 0, err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": id})
	return id, nil
}

// DeleteWeek cascades to the week's meals, their ingredients and
// multipliers, and the week's shopping check marks.
func (s *PlannerService) DeleteWeek(weekID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var week models.Week
		if err := tx.First(&week, weekID).Error; err != nil {
			return translate(err, "week", weekID)
		}
		var mealIDs []uint
		if err := tx.Model(&models.Meal{}).Where("week_id = ?", weekID).Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		if len(mealIDs) > 0 {
			if err := tx.Where("meal_id IN ?", mealIDs).Delete(&models.MealIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("meal_id IN ?", mealIDs).Delete(&models.MealMultiplier{}).Error; err != nil {
				return err
			}
			if err := tx.Where("week_id = ?", weekID).Delete(&models.Meal{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("week_id = ?", weekID).Delete(&models.ShoppingChecked{}).Error; err != nil {
			return err
		}
		return tx.Delete(&week).Error
	})
	if err != nil {
		return err
	}
	if s.log != nil {
		s.log.WithField("week_id", weekID).Info("week deleted")
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID, "deleted": true})
	return nil
}

func (s *PlannerService) ListWeeks() ([]models.Week, error) {
	var weeks []models.Week
	err := s.db.Order("id ASC").Find(&weeks).Error
	return weeks, err
}

func (s *PlannerService) RenameWeek(weekID uint, displayName string) error {
	res := s.db.Model(&models.Week{}).Where("id = ?", weekID).Update("display_name", displayName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("week", weekID)
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID})
	return nil
}

func (s *PlannerService) ClearWeekName(weekID uint) error {
	return s.RenameWeek(weekID, "")
}

func validDay(day int) error {
	if day < models.Monday || day > models.Sunday {
		return invalidf("day %d out of range", day)
	}
	return nil
}

// shiftOrdinalsTx makes room at fromOrdinal by pushing every meal of the
// day at or above it up by one.
func shiftOrdinalsTx(tx *gorm.DB, weekID uint, day, fromOrdinal int) error {
	return tx.Model(&models.Meal{}).
		Where("week_id = ? AND day = ? AND ordinal >= ?", weekID, day, fromOrdinal).
		Update("ordinal", gorm.Expr("ordinal + 1")).Error
}

// normalizeOrdinalsTx renumbers the day's meals to 1..N in their current
// order, closing any gaps left by deletions or moves.
func normalizeOrdinalsTx(tx *gorm.DB, weekID uint, day int) error {
	var meals []models.Meal
	if err := tx.Where("week_id = ? AND day = ?", weekID, day).
		Order("ordinal ASC, id ASC").Find(&meals).Error; err != nil {
		return err
	}
	for i := range meals {
		want := i + 1
		if meals[i].Ordinal == want {
			continue
		}
		if err := tx.Model(&models.Meal{}).Where("id = ?", meals[i].ID).
			Update("ordinal", want).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertMealTx places a new meal at (day, ordinal), shifting on collision.
// A nil ordinal appends after the day's last meal. Shared with the recipe
// book's apply-to-slot path.
func insertMealTx(tx *gorm.DB, weekID uint, day int, name string, ordinal *int, sourceRecipeID *uint) (*models.Meal, error) {
	if err := validDay(day); err != nil {
		return nil, err
	}
	var week models.Week
	if err := tx.First(&week, weekID).Error; err != nil {
		return nil, translate(err, "week", weekID)
	}

	target := 0
	if ordinal != nil {
		if *ordinal < 1 {
			return nil, invalidf("ordinal %d must be >= 1", *ordinal)
		}
		target = *ordinal
	}

	var count int64
	if err := tx.Model(&models.Meal{}).Where("week_id = ? AND day = ?", weekID, day).Count(&count).Error; err != nil {
		return nil, err
	}
	if target == 0 || target > int(count)+1 {
		target = int(count) + 1
	} else {
		if err := shiftOrdinalsTx(tx, weekID, day, target); err != nil {
			return nil, err
		}
	}

	meal := models.Meal{
		Name:           strings.TrimSpace(name),
		Day:            day,
		Ordinal:        target,
		WeekID:         weekID,
		SourceRecipeID: sourceRecipeID,
	}
	if err := tx.Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *PlannerService) AddMeal(weekID uint, day int, name string, ordinal *int) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := insertMealTx(tx, weekID, day, name, ordinal, nil)
		if err != nil {
			return err
		}
		id = meal.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID})
	return id, nil
}

func (s *PlannerService) ShiftOrdinals(weekID uint, day, fromOrdinal int) error {
	if err := validDay(day); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return shiftOrdinalsTx(tx, weekID, day, fromOrdinal)
	})
}

func (s *PlannerService) NormalizeOrdinals(weekID uint, day int) error {
	if err := validDay(day); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return normalizeOrdinalsTx(tx, weekID, day)
	})
}

// DeleteMeal removes a meal, its ingredients and multiplier, then
// renumbers the day it lived in.
func (s *PlannerService) DeleteMeal(mealID uint) error {
	var weekID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, mealID).Error; err != nil {
			return translate(err, "meal", mealID)
		}
		weekID = meal.WeekID
		if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealMultiplier{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&meal).Error; err != nil {
			return err
		}
		return normalizeOrdinalsTx(tx, meal.WeekID, meal.Day)
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID})
	return nil
}

// MoveMeal relocates a meal to (destDay, destOrdinal) atomically and
// renumbers both affected days, so callers never observe gaps.
func (s *PlannerService) MoveMeal(mealID uint, destDay, destOrdinal int) error {
	if err := validDay(destDay); err != nil {
		return err
	}
	if destOrdinal < 1 {
		return invalidf("ordinal %d must be >= 1", destOrdinal)
	}
	var weekID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, mealID).Error; err != nil {
			return translate(err, "meal", mealID)
		}
		weekID = meal.WeekID
		origDay, origOrdinal := meal.Day, meal.Ordinal

		// Make room at the destination, ignoring the meal being moved.
		if err := tx.Model(&models.Meal{}).
			Where("week_id = ? AND day = ? AND ordinal >= ? AND id <> ?", meal.WeekID, destDay, destOrdinal, meal.ID).
			Update("ordinal", gorm.Expr("ordinal + 1")).Error; err != nil {
			return err
		}
		meal.Day = destDay
		meal.Ordinal = destOrdinal
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		if destDay != origDay {
			if err := tx.Model(&models.Meal{}).
				Where("week_id = ? AND day = ? AND ordinal > ?", meal.WeekID, origDay, origOrdinal).
				Update("ordinal", gorm.Expr("ordinal - 1")).Error; err != nil {
				return err
			}
			if err := normalizeOrdinalsTx(tx, meal.WeekID, origDay); err != nil {
				return err
			}
		}
		return normalizeOrdinalsTx(tx, meal.WeekID, destDay)
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"week_id": weekID})
	return nil
}

func (s *PlannerService) RenameMeal(mealID uint, name string) error {
	res := s.db.Model(&models.Meal{}).Where("id = ?", mealID).Update("name", strings.TrimSpace(name))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("meal", mealID)
	}
	return nil
}

// UpdateMealIngredientGrams sets the grams of one ingredient and marks it
// manually modified.
func (s *PlannerService) UpdateMealIngredientGrams(mealID, foodID uint, grams float64) error {
	if grams <= 0 {
		return invalidf("grams must be positive")
	}
	res := s.db.Model(&models.MealIngredient{}).
		Where("meal_id = ? AND food_id = ?", mealID, foodID).
		Updates(map[string]any{"grams": grams, "modified": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("meal ingredient for food", foodID)
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"meal_id": mealID})
	return nil
}

func (s *PlannerService) RemoveMealIngredient(mealID, foodID uint) error {
	res := s.db.Where("meal_id = ? AND food_id = ?", mealID, foodID).Delete(&models.MealIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("meal ingredient for food", foodID)
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"meal_id": mealID})
	return nil
}

// addFoodToMealTx merges into an existing row when the food is already on
// the meal: grams accumulate and the modified flags OR together. Direct
// additions and decomposed composed-food drops share this path, so a food
// never appears twice in one meal.
func addFoodToMealTx(tx *gorm.DB, mealID, foodID uint, grams float64, modified bool) error {
	if grams <= 0 {
		return invalidf("grams must be positive")
	}
	var meal models.Meal
	if err := tx.First(&meal, mealID).Error; err != nil {
		return translate(err, "meal", mealID)
	}
	var food models.Food
	if err := tx.First(&food, foodID).Error; err != nil {
		return translate(err, "food", foodID)
	}

	var row models.MealIngredient
	err := tx.Where("meal_id = ? AND food_id = ?", mealID, foodID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.MealIngredient{MealID: mealID, FoodID: foodID, Grams: grams, Modified: modified}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}
	row.Grams += grams
	row.Modified = row.Modified || modified
	return tx.Save(&row).Error
}

func (s *PlannerService) AddFoodToMeal(mealID, foodID uint, grams float64, modified bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return addFoodToMealTx(tx, mealID, foodID, grams, modified)
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"meal_id": mealID})
	return nil
}

// AddComposedToMeal decomposes a composed food into its ingredients scaled
// to the requested grams and merges each into the meal. The decomposition
// happens here, at insertion time; the meal keeps no link to the composed
// food.
func (s *PlannerService) AddComposedToMeal(mealID, composedID uint, grams float64) error {
	if grams <= 0 {
		return invalidf("grams must be positive")
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cf models.ComposedFood
		if err := tx.Preload("Ingredients").First(&cf, composedID).Error; err != nil {
			return translate(err, "composed food", composedID)
		}
		var total float64
		for _, in := range cf.Ingredients {
			total += in.Grams
		}
		if total <= 0 {
			return invalidf("composed food %d has no ingredients", composedID)
		}
		scale := grams / total
		for _, in := range cf.Ingredients {
			if err := addFoodToMealTx(tx, mealID, in.FoodID, in.Grams*scale, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventWeekChanged, map[string]any{"meal_id": mealID})
	return nil
}

// SetMealMultiplier stores the shopping-only scaling state for a meal.
func (s *PlannerService) SetMealMultiplier(mealID uint, multiplier int, alreadyPrepared bool) error {
	if multiplier < 1 {
		return invalidf("multiplier %d must be >= 1", multiplier)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, mealID).Error; err != nil {
			return translate(err, "meal", mealID)
		}
		var row models.MealMultiplier
		err := tx.Where("meal_id = ?", mealID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.MealMultiplier{MealID: mealID, Multiplier: multiplier, IgnoreForShopping: alreadyPrepared}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		row.Multiplier = multiplier
		row.IgnoreForShopping = alreadyPrepared
		return tx.Save(&row).Error
	})
}

func (s *PlannerService) GetMealMultiplier(mealID uint) (models.MealMultiplier, error) {
	row := models.MealMultiplier{MealID: mealID, Multiplier: 1}
	err := s.db.Where("meal_id = ?", mealID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MealMultiplier{MealID: mealID, Multiplier: 1}, nil
	}
	return row, err
}

// MealTotals are always recomputed from current ingredient rows.
type MealTotals struct {
	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Carbs    float64 `json:"total_carbs"`
	Fat      float64 `json:"total_fat"`
	Cost     float64 `json:"total_cost"`
}

func (t *MealTotals) add(o MealTotals) {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fat += o.Fat
	t.Cost += o.Cost
}

type MealIngredientView struct {
	FoodID       uint    `json:"food_id"`
	FoodName     string  `json:"food_name"`
	Grams        float64 `json:"grams"`
	Modified     bool    `json:"modified"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Cost         float64 `json:"cost"`
	Inconsistent bool    `json:"inconsistent"`
}

type MealView struct {
	ID             uint                 `json:"id"`
	Name           string               `json:"name"`
	Day            int                  `json:"day"`
	Ordinal        int                  `json:"ordinal"`
	SourceRecipeID *uint                `json:"source_recipe_id,omitempty"`
	Ingredients    []MealIngredientView `json:"ingredients"`
	Totals         MealTotals           `json:"totals"`
}

type WeekView struct {
	ID          uint               `json:"id"`
	DisplayName string             `json:"display_name,omitempty"`
	Days        map[int][]MealView `json:"days"`
	DayTotals   map[int]MealTotals `json:"day_totals"`
}

func mealView(meal models.Meal) MealView {
	v := MealView{
		ID:             meal.ID,
		Name:           meal.Name,
		Day:            meal.Day,
		Ordinal:        meal.Ordinal,
		SourceRecipeID: meal.SourceRecipeID,
	}
	for _, in := range meal.Ingredients {
		scale := in.Grams / 100
		iv := MealIngredientView{
			FoodID:       in.FoodID,
			FoodName:     in.Food.Name,
			Grams:        in.Grams,
			Modified:     in.Modified,
			Calories:     in.Food.Calories * scale,
			Protein:      in.Food.Protein * scale,
			Carbs:        in.Food.Carbs * scale,
			Fat:          in.Food.Fat * scale,
			Cost:         in.Food.PricePerKg * in.Grams / 1000,
			Inconsistent: in.Food.CalorieMismatch(),
		}
		v.Ingredients = append(v.Ingredients, iv)
		v.Totals.Calories += iv.Calories
		v.Totals.Protein += iv.Protein
		v.Totals.Carbs += iv.Carbs
		v.Totals.Fat += iv.Fat
		v.Totals.Cost += iv.Cost
	}
	return v
}

// GetWeek returns every day Monday..Sunday, each with its meals sorted by
// ordinal and fully populated totals. Days without meals come back as
// empty slices so the GUI can render the full grid.
func (s *PlannerService) GetWeek(weekID uint) (*WeekView, error) {
	var week models.Week
	if err := s.db.First(&week, weekID).Error; err != nil {
		return nil, translate(err, "week", weekID)
	}
	var meals []models.Meal
	if err := s.db.Preload("Ingredients.Food").
		Where("week_id = ?", weekID).Find(&meals).Error; err != nil {
		return nil, err
	}

	view := &WeekView{
		ID:          week.ID,
		DisplayName: week.DisplayName,
		Days:        make(map[int][]MealView, 7),
		DayTotals:   make(map[int]MealTotals, 7),
	}
	for day := models.Monday; day <= models.Sunday; day++ {
		view.Days[day] = []MealView{}
		view.DayTotals[day] = MealTotals{}
	}
	for _, meal := range meals {
		mv := mealView(meal)
		view.Days[meal.Day] = append(view.Days[meal.Day], mv)
		dt := view.DayTotals[meal.Day]
		dt.add(mv.Totals)
		view.DayTotals[meal.Day] = dt
	}
	for day := range view.Days {
		sort.SliceStable(view.Days[day], func(i, j int) bool {
			return view.Days[day][i].Ordinal < view.Days[day][j].Ordinal
		})
	}
	return view, nil
}

// DayTotals sums every meal of the day.
func (s *PlannerService) DayTotals(weekID uint, day int) (MealTotals, error) {
	if err := validDay(day); err != nil {
		return MealTotals{}, err
	}
	week, err := s.GetWeek(weekID)
	if err != nil {
		return MealTotals{}, err
	}
	return week.DayTotals[day], nil
}

// NutrientReport compares one nutrient of a planned day to its target.
type NutrientReport struct {
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
	Status string  `json:"status"`
}

type DayReport struct {
	Day      int            `json:"day"`
	Calories NutrientReport `json:"calories"`
	Protein  NutrientReport `json:"protein"`
	Carbs    NutrientReport `json:"carbs"`
	Fat      NutrientReport `json:"fat"`
}

// ReportDay compares the day's totals to the given targets using the
// status thresholds of the target engine.
func (s *PlannerService) ReportDay(weekID uint, day int, targets Targets) (*DayReport, error) {
	totals, err := s.DayTotals(weekID, day)
	if err != nil {
		return nil, err
	}
	report := func(v float64, t int) NutrientReport {
		return NutrientReport{Value: v, Target: float64(t), Status: NutrientStatus(v, float64(t))}
	}
	return &DayReport{
		Day:      day,
		Calories: report(totals.Calories, targets.Final),
		Protein:  report(totals.Protein, targets.ProteinG),
		Carbs:    report(totals.Carbs, targets.CarbsG),
		Fat:      report(totals.Fat, targets.FatG),
	}, nil
}
