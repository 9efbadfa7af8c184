package services

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/utils"
)

// The JSON envelope keeps the original French key names (aliments,
// repas_types, planning) so existing exports keep importing. Planning days
// are keyed by French day name; import also accepts a bare ordinal.
var dayNames = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

func parseDay(s string) (int, bool) {
	for i, name := range dayNames {
		if s == name {
			return i, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= models.Monday && n <= models.Sunday {
		return n, true
	}
	return 0, false
}

type FoodExport struct {
	Name       string  `json:"nom"`
	Brand      string  `json:"marque,omitempty"`
	Store      string  `json:"magasin,omitempty"`
	Category   string  `json:"categorie,omitempty"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"proteines"`
	Carbs      float64 `json:"glucides"`
	Fat        float64 `json:"lipides"`
	Fiber      float64 `json:"fibres"`
	PricePerKg float64 `json:"prix_kg,omitempty"`
}

type IngredientExport struct {
	Name     string  `json:"nom"`
	Brand    string  `json:"marque,omitempty"`
	Grams    float64 `json:"quantite"`
	Modified bool    `json:"modifie,omitempty"`
}

type RecipeExport struct {
	Name        string             `json:"nom"`
	Description string             `json:"description,omitempty"`
	Aliments    []IngredientExport `json:"aliments"`
}

type MealExport struct {
	Name     string             `json:"nom"`
	Ordinal  int                `json:"position"`
	Aliments []IngredientExport `json:"aliments"`
}

// Envelope is the import/export document. Every key is optional and
// independent.
type Envelope struct {
	Aliments   []FoodExport            `json:"aliments,omitempty"`
	RepasTypes []RecipeExport          `json:"repas_types,omitempty"`
	Planning   map[string][]MealExport `json:"planning,omitempty"`
}

type ExportService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewExportService(db *gorm.DB, log *logrus.Logger) *ExportService {
	return &ExportService{db: db, log: log}
}

// Export projects the catalog, the recipe book and, when weekID is
// non-zero, the given week's planning into an envelope.
func (s *ExportService) Export(weekID uint) (*Envelope, error) {
	env := &Envelope{}

	var foods []models.Food
	if err := s.db.Order("name ASC, brand ASC").Find(&foods).Error; err != nil {
		return nil, err
	}
	for _, f := range foods {
		env.Aliments = append(env.Aliments, FoodExport{
			Name:       f.Name,
			Brand:      f.Brand,
			Store:      f.Store,
			Category:   f.Category,
			Calories:   f.Calories,
			Protein:    f.Protein,
			Carbs:      f.Carbs,
			Fat:        f.Fat,
			Fiber:      f.Fiber,
			PricePerKg: f.PricePerKg,
		})
	}

	var recipes []models.Recipe
	if err := s.db.Preload("Ingredients.Food").Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	for _, r := range recipes {
		re := RecipeExport{Name: r.Name, Description: r.Description, Aliments: []IngredientExport{}}
		for _, in := range r.Ingredients {
			re.Aliments = append(re.Aliments, IngredientExport{
				Name:  in.Food.Name,
				Brand: in.Food.Brand,
				Grams: in.Grams,
			})
		}
		env.RepasTypes = append(env.RepasTypes, re)
	}

	if weekID != 0 {
		var meals []models.Meal
		if err := s.db.Preload("Ingredients.Food").
			Where("week_id = ?", weekID).
			Order("day ASC, ordinal ASC").Find(&meals).Error; err != nil {
			return nil, err
		}
		env.Planning = make(map[string][]MealExport)
		for _, m := range meals {
			me := MealExport{Name: m.Name, Ordinal: m.Ordinal, Aliments: []IngredientExport{}}
			for _, in := range m.Ingredients {
				me.Aliments = append(me.Aliments, IngredientExport{
					Name:     in.Food.Name,
					Brand:    in.Food.Brand,
					Grams:    in.Grams,
					Modified: in.Modified,
				})
			}
			day := dayNames[m.Day]
			env.Planning[day] = append(env.Planning[day], me)
		}
	}

	return env, nil
}

// Import applies an envelope in one transaction. Foods upsert by
// (name, brand), recipes upsert by name with their ingredient lists
// replaced, and a planning creates a fresh week. Matching folds accents
// and case the same way catalog search does, so a re-imported export hits
// the existing rows even when the names were typed without accents.
// Ingredient references resolve against the post-upsert catalog; an
// unknown reference fails the whole import.
func (s *ExportService) Import(env *Envelope) (weekID uint, err error) {
	foodKey := func(name, brand string) string {
		return utils.Fold(name) + "\x00" + utils.Fold(brand)
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var catalog []models.Food
		if err := tx.Find(&catalog).Error; err != nil {
			return err
		}
		foodIDs := make(map[string]uint, len(catalog))
		for _, f := range catalog {
			foodIDs[foodKey(f.Name, f.Brand)] = f.ID
		}

		for _, fe := range env.Aliments {
			if fe.Name == "" {
				return invalidf("imported food has no name")
			}
			var food models.Food
			if id, ok := foodIDs[foodKey(fe.Name, fe.Brand)]; ok {
				if err := tx.First(&food, id).Error; err != nil {
					return err
				}
			}
			food.Name = fe.Name
			food.Brand = fe.Brand
			food.Store = fe.Store
			food.Category = fe.Category
			food.Calories = fe.Calories
			food.Protein = fe.Protein
			food.Carbs = fe.Carbs
			food.Fat = fe.Fat
			food.Fiber = fe.Fiber
			food.PricePerKg = fe.PricePerKg
			if err := tx.Save(&food).Error; err != nil {
				return err
			}
			foodIDs[foodKey(food.Name, food.Brand)] = food.ID
		}

		findFood := func(name, brand string) (uint, error) {
			if id, ok := foodIDs[foodKey(name, brand)]; ok {
				return id, nil
			}
			return 0, invalidf("imported ingredient references unknown food %q", name)
		}

		var recipes []models.Recipe
		if err := tx.Find(&recipes).Error; err != nil {
			return err
		}
		recipeIDs := make(map[string]uint, len(recipes))
		for _, r := range recipes {
			recipeIDs[utils.Fold(r.Name)] = r.ID
		}

		for _, re := range env.RepasTypes {
			if re.Name == "" {
				return invalidf("imported recipe has no name")
			}
			var recipe models.Recipe
			if id, ok := recipeIDs[utils.Fold(re.Name)]; ok {
				if err := tx.First(&recipe, id).Error; err != nil {
					return err
				}
			}
			recipe.Name = re.Name
			recipe.Description = re.Description
			if err := tx.Save(&recipe).Error; err != nil {
				return err
			}
			recipeIDs[utils.Fold(recipe.Name)] = recipe.ID
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, in := range re.Aliments {
				foodID, err := findFood(in.Name, in.Brand)
				if err != nil {
					return err
				}
				row := models.RecipeIngredient{RecipeID: recipe.ID, FoodID: foodID, Grams: in.Grams}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		if len(env.Planning) > 0 {
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
			if err := tx.Create(&models.Week{ID: next}).Error; err != nil {
				return err
			}
			weekID = next

			days := make([]string, 0, len(env.Planning))
			for day := range env.Planning {
				days = append(days, day)
			}
			sort.Strings(days)
			for _, dayKey := range days {
				day, ok := parseDay(dayKey)
				if !ok {
					return invalidf("unknown planning day %q", dayKey)
				}
				mealExports := env.Planning[dayKey]
				sort.SliceStable(mealExports, func(i, j int) bool {
					return mealExports[i].Ordinal < mealExports[j].Ordinal
				})
				for i, me := range mealExports {
					meal := models.Meal{Name: me.Name, Day: day, Ordinal: i + 1, WeekID: weekID}
					if err := tx.Create(&meal).Error; err != nil {
						return err
					}
					for _, in := range me.Aliments {
						foodID, err := findFood(in.Name, in.Brand)
						if err != nil {
							return err
						}
						row := models.MealIngredient{
							MealID:   meal.ID,
							FoodID:   foodID,
							Grams:    in.Grams,
							Modified: in.Modified,
						}
						if err := tx.Create(&row).Error; err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"foods":   len(env.Aliments),
			"recipes": len(env.RepasTypes),
			"week_id": weekID,
		}).Info("import completed")
	}
	return weekID, nil
}
