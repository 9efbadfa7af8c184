package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/utils"
)

// Buckets for foods without a store or category.
const (
	NoStore    = "No store"
	NoCategory = "No category"
)

// ShoppingService turns a week's plan into a grouped shopping list and
// keeps the orthogonal "bought" check marks.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

type ShoppingItem struct {
	FoodID     uint    `json:"food_id"`
	FoodName   string  `json:"food_name"`
	TotalGrams float64 `json:"total_grams"`
	PricePerKg float64 `json:"price_per_kg"`
}

type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []ShoppingItem `json:"items"`
}

type StoreGroup struct {
	Store      string          `json:"store"`
	Categories []CategoryGroup `json:"categories"`
}

// Aggregate consolidates every ingredient of the week's meals. Meals
// marked already-prepared contribute nothing; the others have their grams
// scaled by the meal's integer multiplier. Stateless and deterministic:
// stores and categories sort alphabetically (accent-insensitive), items by
// food name.
func (s *ShoppingService) Aggregate(weekID uint) ([]StoreGroup, error) {
	var week models.Week
	if err := s.db.First(&week, weekID).Error; err != nil {
		return nil, translate(err, "week", weekID)
	}

	var meals []models.Meal
	if err := s.db.Preload("Ingredients.Food").
		Where("week_id = ?", weekID).Find(&meals).Error; err != nil {
		return nil, err
	}

	var multipliers []models.MealMultiplier
	if len(meals) > 0 {
		mealIDs := make([]uint, 0, len(meals))
		for _, m := range meals {
			mealIDs = append(mealIDs, m.ID)
		}
		if err := s.db.Where("meal_id IN ?", mealIDs).Find(&multipliers).Error; err != nil {
			return nil, err
		}
	}
	multByMeal := make(map[uint]models.MealMultiplier, len(multipliers))
	for _, m := range multipliers {
		multByMeal[m.MealID] = m
	}

	type key struct {
		store    string
		category string
		foodID   uint
	}
	grams := make(map[key]float64)
	foods := make(map[uint]models.Food)

	for _, meal := range meals {
		mult := 1
		if m, ok := multByMeal[meal.ID]; ok {
			if m.IgnoreForShopping {
				continue
			}
			if m.Multiplier > 0 {
				mult = m.Multiplier
			}
		}
		for _, in := range meal.Ingredients {
			store := in.Food.Store
			if store == "" {
				store = NoStore
			}
			category := in.Food.Category
			if category == "" {
				category = NoCategory
			}
			grams[key{store, category, in.FoodID}] += in.Grams * float64(mult)
			foods[in.FoodID] = in.Food
		}
	}

	byStore := make(map[string]map[string][]ShoppingItem)
	for k, g := range grams {
		f := foods[k.foodID]
		if byStore[k.store] == nil {
			byStore[k.store] = make(map[string][]ShoppingItem)
		}
		byStore[k.store][k.category] = append(byStore[k.store][k.category], ShoppingItem{
			FoodID:     k.foodID,
			FoodName:   f.Name,
			TotalGrams: g,
			PricePerKg: f.PricePerKg,
		})
	}

	out := make([]StoreGroup, 0, len(byStore))
	for store, cats := range byStore {
		sg := StoreGroup{Store: store}
		for category, items := range cats {
			sort.Slice(items, func(i, j int) bool {
				if c := utils.FoldCompare(items[i].FoodName, items[j].FoodName); c != 0 {
					return c < 0
				}
				return items[i].FoodID < items[j].FoodID
			})
			sg.Categories = append(sg.Categories, CategoryGroup{Category: category, Items: items})
		}
		sort.Slice(sg.Categories, func(i, j int) bool {
			return utils.FoldCompare(sg.Categories[i].Category, sg.Categories[j].Category) < 0
		})
		out = append(out, sg)
	}
	sort.Slice(out, func(i, j int) bool {
		return utils.FoldCompare(out[i].Store, out[j].Store) < 0
	})
	return out, nil
}

// SetChecked stores the bought flag for (week, food). The aggregator never
// reads it; it only survives until the food or week goes away.
func (s *ShoppingService) SetChecked(weekID, foodID uint, checked bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var week models.Week
		if err := tx.First(&week, weekID).Error; err != nil {
			return translate(err, "week", weekID)
		}
		var food models.Food
		if err := tx.First(&food, foodID).Error; err != nil {
			return translate(err, "food", foodID)
		}
		var row models.ShoppingChecked
		err := tx.Where("week_id = ? AND food_id = ?", weekID, foodID).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = models.ShoppingChecked{WeekID: weekID, FoodID: foodID, Checked: checked}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		row.Checked = checked
		return tx.Save(&row).Error
	})
}

// ListChecked returns the food ids currently ticked for the week.
func (s *ShoppingService) ListChecked(weekID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.ShoppingChecked{}).
		Where("week_id = ? AND checked = ?", weekID, true).
		Order("food_id ASC").
		Pluck("food_id", &ids).Error
	return ids, err
}
