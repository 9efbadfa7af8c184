package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

// ComposedService owns composed foods: named ingredient sets selectable in
// the catalog as a single item, with derived per-100g values.
type ComposedService struct {
	db  *gorm.DB
	hub *EventHub
}

func NewComposedService(db *gorm.DB, hub *EventHub) *ComposedService {
	return &ComposedService{db: db, hub: hub}
}

type IngredientInput struct {
	FoodID uint    `json:"food_id"`
	Grams  float64 `json:"grams"`
}

func validateIngredients(tx *gorm.DB, ingredients []IngredientInput) error {
	for _, in := range ingredients {
		if in.Grams <= 0 {
			return invalidf("ingredient grams must be positive")
		}
		var n int64
		if err := tx.Model(&models.Food{}).Where("id = ?", in.FoodID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return notFound("food", in.FoodID)
		}
	}
	return nil
}

func (s *ComposedService) AddComposed(name, description, category string, ingredients []IngredientInput) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, invalidf("composed food name is empty")
	}
	cf := models.ComposedFood{Name: strings.TrimSpace(name), Description: description, Category: category}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := validateIngredients(tx, ingredients); err != nil {
			return err
		}
		if err := tx.Create(&cf).Error; err != nil {
			return err
		}
		for _, in := range ingredients {
			row := models.ComposedFoodIngredient{ComposedFoodID: cf.ID, FoodID: in.FoodID, Grams: in.Grams}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.hub.Publish(EventFoodChanged, map[string]any{"composed_id": cf.ID})
	return cf.ID, nil
}

func (s *ComposedService) UpdateComposed(id uint, name, description, category string, ingredients []IngredientInput) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("composed food name is empty")
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cf models.ComposedFood
		if err := tx.First(&cf, id).Error; err != nil {
			return translate(err, "composed food", id)
		}
		if err := validateIngredients(tx, ingredients); err != nil {
			return err
		}
		cf.Name = strings.TrimSpace(name)
		cf.Description = description
		cf.Category = category
		if err := tx.Save(&cf).Error; err != nil {
			return err
		}
		if err := tx.Where("composed_food_id = ?", id).Delete(&models.ComposedFoodIngredient{}).Error; err != nil {
			return err
		}
		for _, in := range ingredients {
			row := models.ComposedFoodIngredient{ComposedFoodID: id, FoodID: in.FoodID, Grams: in.Grams}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventFoodChanged, map[string]any{"composed_id": id})
	return nil
}

func (s *ComposedService) DeleteComposed(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cf models.ComposedFood
		if err := tx.First(&cf, id).Error; err != nil {
			return translate(err, "composed food", id)
		}
		if err := tx.Where("composed_food_id = ?", id).Delete(&models.ComposedFoodIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cf).Error
	})
	if err != nil {
		return err
	}
	s.hub.Publish(EventFoodChanged, map[string]any{"composed_id": id, "deleted": true})
	return nil
}

func (s *ComposedService) GetComposed(id uint) (*models.ComposedFood, error) {
	var cf models.ComposedFood
	if err := s.db.Preload("Ingredients.Food").First(&cf, id).Error; err != nil {
		return nil, translate(err, "composed food", id)
	}
	return &cf, nil
}

func (s *ComposedService) ListComposed() ([]models.ComposedFood, error) {
	var out []models.ComposedFood
	err := s.db.Preload("Ingredients.Food").Order("name ASC").Find(&out).Error
	return out, err
}

// Per100g derives the composed food's nutrient values: total nutrients over
// total grams, scaled back to 100 g. All zeros when total grams is zero.
func (s *ComposedService) Per100g(id uint) (Macros, error) {
	cf, err := s.GetComposed(id)
	if err != nil {
		return Macros{}, err
	}
	var total Macros
	var grams float64
	for _, in := range cf.Ingredients {
		scale := in.Grams / 100
		total.Calories += in.Food.Calories * scale
		total.Protein += in.Food.Protein * scale
		total.Carbs += in.Food.Carbs * scale
		total.Fat += in.Food.Fat * scale
		total.Fiber += in.Food.Fiber * scale
		grams += in.Grams
	}
	if grams == 0 {
		return Macros{}, nil
	}
	norm := 100 / grams
	return Macros{
		Calories: total.Calories * norm,
		Protein:  total.Protein * norm,
		Carbs:    total.Carbs * norm,
		Fat:      total.Fat * norm,
		Fiber:    total.Fiber * norm,
	}, nil
}
