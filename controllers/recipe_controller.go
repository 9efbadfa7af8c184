package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type RecipeController struct {
	recipes *services.RecipeService
}

func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{recipes: recipes}
}

func (ct *RecipeController) ListRecipes(c *gin.Context) {
	out, err := ct.recipes.ListRecipes()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *RecipeController) GetRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.recipes.GetRecipe(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *RecipeController) AddRecipe(c *gin.Context) {
	var attrs services.RecipeAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	id, err := ct.recipes.AddRecipe(attrs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *RecipeController) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var attrs services.RecipeAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.recipes.UpdateRecipe(id, attrs); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *RecipeController) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ct.recipes.DeleteRecipe(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type recipeIngredientRequest struct {
	FoodID uint    `json:"food_id"`
	Grams  float64 `json:"grams"`
}

func (ct *RecipeController) AddIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req recipeIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.recipes.AddIngredient(id, req.FoodID, req.Grams); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *RecipeController) UpdateIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := idParam(c, "foodId")
	if !ok {
		return
	}
	var req struct {
		Grams float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.recipes.UpdateIngredientGrams(id, foodID, req.Grams); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *RecipeController) RemoveIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := idParam(c, "foodId")
	if !ok {
		return
	}
	if err := ct.recipes.RemoveIngredient(id, foodID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type applyRequest struct {
	WeekID       uint             `json:"week_id"`
	Day          int              `json:"day"`
	Ordinal      int              `json:"ordinal"`
	ScaleFactors map[uint]float64 `json:"scale_factors,omitempty"`
	OverrideName string           `json:"override_name,omitempty"`
}

// POST /recipes/:id/apply
func (ct *RecipeController) ApplyToMealSlot(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	mealID, err := ct.recipes.ApplyToMealSlot(id, req.WeekID, req.Day, req.Ordinal, req.ScaleFactors, req.OverrideName)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal_id": mealID})
}

// POST /recipes/:id/propagate
func (ct *RecipeController) Propagate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	count, err := ct.recipes.PropagateRecipeChange(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated_meals": count})
}

func (ct *RecipeController) ListCategories(c *gin.Context) {
	out, err := ct.recipes.ListCategories()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *RecipeController) AddCategory(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	id, err := ct.recipes.AddCategory(req.Name, req.Color)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *RecipeController) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ct.recipes.DeleteCategory(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
