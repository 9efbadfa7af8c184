package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/controllers"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/middlewares"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

// SetupRouter wires the service graph and exposes the core operations to
// the local GUI shell.
func SetupRouter(db *gorm.DB, log *logrus.Logger) *gin.Engine {
	hub := services.NewEventHub()

	catalogSvc := services.NewCatalogService(db, log, hub)
	composedSvc := services.NewComposedService(db, hub)
	recipeSvc := services.NewRecipeService(db, log, hub)
	plannerSvc := services.NewPlannerService(db, log, hub)
	profileSvc := services.NewProfileService(db, hub)
	shoppingSvc := services.NewShoppingService(db)
	exportSvc := services.NewExportService(db, log)

	catalog := controllers.NewCatalogController(catalogSvc, composedSvc)
	recipes := controllers.NewRecipeController(recipeSvc)
	planner := controllers.NewPlannerController(plannerSvc, profileSvc)
	profile := controllers.NewProfileController(profileSvc)
	shopping := controllers.NewShoppingController(shoppingSvc)
	export := controllers.NewExportController(exportSvc)
	events := controllers.NewEventsController(hub)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log))

	foods := r.Group("/foods")
	{
		foods.GET("", catalog.ListFoods)
		foods.POST("", catalog.AddFood)
		foods.GET("/distinct/:field", catalog.Distinct)
		foods.GET("/:id", catalog.GetFood)
		foods.PUT("/:id", catalog.UpdateFood)
		foods.DELETE("/:id", catalog.DeleteFood)
	}

	composed := r.Group("/composed")
	{
		composed.GET("", catalog.ListComposed)
		composed.POST("", catalog.AddComposed)
		composed.PUT("/:id", catalog.UpdateComposed)
		composed.DELETE("/:id", catalog.DeleteComposed)
		composed.GET("/:id/per100g", catalog.ComposedPer100g)
	}

	recipeGroup := r.Group("/recipes")
	{
		recipeGroup.GET("", recipes.ListRecipes)
		recipeGroup.POST("", recipes.AddRecipe)
		recipeGroup.GET("/:id", recipes.GetRecipe)
		recipeGroup.PUT("/:id", recipes.UpdateRecipe)
		recipeGroup.DELETE("/:id", recipes.DeleteRecipe)
		recipeGroup.POST("/:id/ingredients", recipes.AddIngredient)
		recipeGroup.PUT("/:id/ingredients/:foodId", recipes.UpdateIngredient)
		recipeGroup.DELETE("/:id/ingredients/:foodId", recipes.RemoveIngredient)
		recipeGroup.POST("/:id/apply", recipes.ApplyToMealSlot)
		recipeGroup.POST("/:id/propagate", recipes.Propagate)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", recipes.ListCategories)
		categories.POST("", recipes.AddCategory)
		categories.DELETE("/:id", recipes.DeleteCategory)
	}

	weeks := r.Group("/weeks")
	{
		weeks.GET("", planner.ListWeeks)
		weeks.POST("", planner.CreateWeek)
		weeks.GET("/:id", planner.GetWeek)
		weeks.PUT("/:id/name", planner.RenameWeek)
		weeks.DELETE("/:id", planner.DeleteWeek)
		weeks.POST("/:id/meals", planner.AddMeal)
		weeks.GET("/:id/days/:day/report", planner.DayReport)
		weeks.GET("/:id/shopping", shopping.Aggregate)
		weeks.GET("/:id/shopping/checked", shopping.ListChecked)
		weeks.PUT("/:id/shopping/checked/:foodId", shopping.SetChecked)
	}

	meals := r.Group("/meals")
	{
		meals.DELETE("/:id", planner.DeleteMeal)
		meals.PUT("/:id/move", planner.MoveMeal)
		meals.POST("/:id/foods", planner.AddFoodToMeal)
		meals.POST("/:id/composed", planner.AddComposedToMeal)
		meals.PUT("/:id/foods/:foodId", planner.UpdateMealIngredient)
		meals.DELETE("/:id/foods/:foodId", planner.RemoveMealIngredient)
		meals.GET("/:id/multiplier", planner.GetMealMultiplier)
		meals.PUT("/:id/multiplier", planner.SetMealMultiplier)
	}

	r.GET("/profile", profile.GetProfile)
	r.PUT("/profile", profile.UpdateProfile)
	r.GET("/profile/targets", profile.GetTargets)

	r.GET("/export", export.Export)
	r.POST("/import", export.Import)

	r.GET("/events", events.Subscribe)

	return r
}
