package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type PlannerController struct {
	planner *services.PlannerService
	profile *services.ProfileService
}

func NewPlannerController(planner *services.PlannerService, profile *services.ProfileService) *PlannerController {
	return &PlannerController{planner: planner, profile: profile}
}

func (ct *PlannerController) ListWeeks(c *gin.Context) {
	out, err := ct.planner.ListWeeks()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *PlannerController) CreateWeek(c *gin.Context) {
	id, err := ct.planner.CreateWeek()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *PlannerController) DeleteWeek(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ct.planner.DeleteWeek(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) RenameWeek(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.planner.RenameWeek(id, req.DisplayName); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) GetWeek(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.planner.GetWeek(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type addMealRequest struct {
	Day     int    `json:"day"`
	Name    string `json:"name"`
	Ordinal *int   `json:"ordinal,omitempty"`
}

func (ct *PlannerController) AddMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req addMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	mealID, err := ct.planner.AddMeal(id, req.Day, req.Name, req.Ordinal)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": mealID})
}

func (ct *PlannerController) DeleteMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ct.planner.DeleteMeal(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveMealRequest struct {
	Day     int `json:"day"`
	Ordinal int `json:"ordinal"`
}

func (ct *PlannerController) MoveMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req moveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.planner.MoveMeal(id, req.Day, req.Ordinal); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type mealFoodRequest struct {
	FoodID   uint    `json:"food_id"`
	Grams    float64 `json:"grams"`
	Modified bool    `json:"modified"`
}

func (ct *PlannerController) AddFoodToMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req mealFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.planner.AddFoodToMeal(id, req.FoodID, req.Grams, req.Modified); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) AddComposedToMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ComposedID uint    `json:"composed_id"`
		Grams      float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.planner.AddComposedToMeal(id, req.ComposedID, req.Grams); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) UpdateMealIngredient(c *gin.Context) {
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
	if err := ct.planner.UpdateMealIngredientGrams(id, foodID, req.Grams); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) RemoveMealIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := idParam(c, "foodId")
	if !ok {
		return
	}
	if err := ct.planner.RemoveMealIngredient(id, foodID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type multiplierRequest struct {
	Multiplier      int  `json:"multiplier"`
	AlreadyPrepared bool `json:"already_prepared"`
}

func (ct *PlannerController) SetMealMultiplier(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req multiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.planner.SetMealMultiplier(id, req.Multiplier, req.AlreadyPrepared); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *PlannerController) GetMealMultiplier(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.planner.GetMealMultiplier(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /weeks/:id/days/:day/report compares the planned day against the
// profile's current targets.
func (ct *PlannerController) DayReport(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	day, ok := idParam(c, "day")
	if !ok {
		return
	}
	profile, err := ct.profile.Get()
	if err != nil {
		respondErr(c, err)
		return
	}
	out, err := ct.planner.ReportDay(id, int(day), profile.Targets)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
