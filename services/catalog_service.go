package services

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/utils"
)

// Macros is a per-100g or total nutrient bundle, depending on context.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// CatalogService owns the set of atomic foods.
type CatalogService struct {
	db  *gorm.DB
	log *logrus.Logger
	hub *EventHub
}

func NewCatalogService(db *gorm.DB, log *logrus.Logger, hub *EventHub) *CatalogService {
	return &CatalogService{db: db, log: log, hub: hub}
}

type FoodAttrs struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Store      string  `json:"store"`
	Category   string  `json:"category"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Fiber      float64 `json:"fiber"`
	PricePerKg float64 `json:"price_per_kg"`
}

// FoodView is the read projection: the stored row plus the read-side
// calorie consistency flag.
type FoodView struct {
	models.Food
	Inconsistent bool `json:"inconsistent"`
}

func viewOf(f models.Food) FoodView {
	return FoodView{Food: f, Inconsistent: f.CalorieMismatch()}
}

func (a FoodAttrs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalidf("food name is empty")
	}
	for _, v := range []float64{a.Calories, a.Protein, a.Carbs, a.Fat, a.Fiber, a.PricePerKg} {
		if v < 0 {
			return invalidf("food %q has a negative value", a.Name)
		}
	}
	return nil
}

func (s *CatalogService) AddFood(attrs FoodAttrs) (uint, error) {
	if err := attrs.validate(); err != nil {
		return 0, err
	}
	food := models.Food{
		Name:       strings.TrimSpace(attrs.Name),
		Brand:      attrs.Brand,
		Store:      attrs.Store,
		Category:   attrs.Category,
		Calories:   attrs.Calories,
		Protein:    attrs.Protein,
		Carbs:      attrs.Carbs,
		Fat:        attrs.Fat,
		Fiber:      attrs.Fiber,
		PricePerKg: attrs.PricePerKg,
	}
	if err := s.db.Create(&food).Error; err != nil {
		return 0, err
	}
	s.hub.Publish(EventFoodChanged, map[string]any{"id": food.ID})
	return food.ID, nil
}

func (s *CatalogService) UpdateFood(id uint, attrs FoodAttrs) error {
	if err := attrs.validate(); err != nil {
		return err
	}
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		return translate(err, "food", id)
	}
	food.Name = strings.TrimSpace(attrs.Name)
	food.Brand = attrs.Brand
	food.Store = attrs.Store
	food.Category = attrs.Category
	food.Calories = attrs.Calories
	food.Protein = attrs.Protein
	food.Carbs = attrs.Carbs
	food.Fat = attrs.Fat
	food.Fiber = attrs.Fiber
	food.PricePerKg = attrs.PricePerKg
	if err := s.db.Save(&food).Error; err != nil {
		return err
	}
	s.hub.Publish(EventFoodChanged, map[string]any{"id": food.ID})
	return nil
}

func (s *CatalogService) GetFood(id uint) (*FoodView, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		return nil, translate(err, "food", id)
	}
	v := viewOf(food)
	return &v, nil
}

// DeleteFood severs every ingredient row referencing the food, then deletes
// the food itself, all in one transaction. Returns true iff the food
// existed.
func (s *CatalogService) DeleteFood(id uint) (bool, error) {
	existed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.First(&food, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		existed = true
		if err := tx.Where("food_id = ?", id).Delete(&models.MealIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_id = ?", id).Delete(&models.ComposedFoodIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_id = ?", id).Delete(&models.ShoppingChecked{}).Error; err != nil {
			return err
		}
		return tx.Delete(&food).Error
	})
	if err != nil {
		return false, err
	}
	if existed {
		if s.log != nil {
			s.log.WithField("food_id", id).Info("food deleted with cascading references")
		}
		s.hub.Publish(EventFoodChanged, map[string]any{"id": id, "deleted": true})
	}
	return existed, nil
}

// Sortable columns for ListFoods.
var numericColumns = map[string]func(f *models.Food) float64{
	"calories":     func(f *models.Food) float64 { return f.Calories },
	"protein":      func(f *models.Food) float64 { return f.Protein },
	"carbs":        func(f *models.Food) float64 { return f.Carbs },
	"fat":          func(f *models.Food) float64 { return f.Fat },
	"fiber":        func(f *models.Food) float64 { return f.Fiber },
	"price_per_kg": func(f *models.Food) float64 { return f.PricePerKg },
}

var textColumns = map[string]func(f *models.Food) string{
	"name":     func(f *models.Food) string { return f.Name },
	"brand":    func(f *models.Food) string { return f.Brand },
	"store":    func(f *models.Food) string { return f.Store },
	"category": func(f *models.Food) string { return f.Category },
}

type FoodFilter struct {
	Category  string `form:"category"`
	Brand     string `form:"brand"`
	Store     string `form:"store"`
	Search    string `form:"q"`
	SortBy    string `form:"sort"` // defaults to name
	Ascending bool   `form:"asc"`
}

// ListFoods filters and sorts the catalog. The free-text search and text
// sorts fold accents and case (see utils.Fold), which sqlite collations do
// not give us, so both run in memory over the filtered rows.
func (s *CatalogService) ListFoods(filter FoodFilter) ([]FoodView, error) {
	q := s.db.Model(&models.Food{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.Store != "" {
		q = q.Where("store = ?", filter.Store)
	}
	var foods []models.Food
	if err := q.Find(&foods).Error; err != nil {
		return nil, err
	}

	if needle := strings.TrimSpace(filter.Search); needle != "" {
		kept := foods[:0]
		for _, f := range foods {
			if utils.FoldContains(f.Name, needle) ||
				utils.FoldContains(f.Brand, needle) ||
				utils.FoldContains(f.Store, needle) ||
				utils.FoldContains(f.Category, needle) {
				kept = append(kept, f)
			}
		}
		foods = kept
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "name"
		filter.Ascending = true
	}
	if key, ok := numericColumns[sortBy]; ok {
		sort.SliceStable(foods, func(i, j int) bool {
			if filter.Ascending {
				return key(&foods[i]) < key(&foods[j])
			}
			return key(&foods[i]) > key(&foods[j])
		})
	} else if key, ok := textColumns[sortBy]; ok {
		sort.SliceStable(foods, func(i, j int) bool {
			c := utils.FoldCompare(key(&foods[i]), key(&foods[j]))
			if filter.Ascending {
				return c < 0
			}
			return c > 0
		})
	} else {
		return nil, invalidf("unknown sort column %q", sortBy)
	}

	out := make([]FoodView, 0, len(foods))
	for _, f := range foods {
		out = append(out, viewOf(f))
	}
	return out, nil
}

// Distinct returns the unique non-empty values of brand, store or category,
// most frequent first. Feeds the GUI's completion dropdowns.
func (s *CatalogService) Distinct(field string) ([]string, error) {
	switch field {
	case "brand", "store", "category":
	default:
		return nil, invalidf("unknown distinct field %q", field)
	}
	var out []string
	err := s.db.Model(&models.Food{}).
		Where(field+" <> ?", "").
		Group(field).
		Order("COUNT(*) DESC, " + field + " ASC").
		Pluck(field, &out).Error
	return out, err
}
