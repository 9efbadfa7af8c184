package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type CatalogController struct {
	catalog  *services.CatalogService
	composed *services.ComposedService
}

func NewCatalogController(catalog *services.CatalogService, composed *services.ComposedService) *CatalogController {
	return &CatalogController{catalog: catalog, composed: composed}
}

// GET /foods?q=…&category=…&brand=…&store=…&sort=…&asc=…
func (ct *CatalogController) ListFoods(c *gin.Context) {
	var filter services.FoodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	out, err := ct.catalog.ListFoods(filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *CatalogController) GetFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.catalog.GetFood(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /foods
func (ct *CatalogController) AddFood(c *gin.Context) {
	var attrs services.FoodAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	id, err := ct.catalog.AddFood(attrs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *CatalogController) UpdateFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var attrs services.FoodAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.catalog.UpdateFood(id, attrs); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *CatalogController) DeleteFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	existed, err := ct.catalog.DeleteFood(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": existed})
}

// GET /foods/distinct/:field
func (ct *CatalogController) Distinct(c *gin.Context) {
	out, err := ct.catalog.Distinct(c.Param("field"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type composedRequest struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    string                     `json:"category"`
	Ingredients []services.IngredientInput `json:"ingredients"`
}

func (ct *CatalogController) AddComposed(c *gin.Context) {
	var req composedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	id, err := ct.composed.AddComposed(req.Name, req.Description, req.Category, req.Ingredients)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (ct *CatalogController) UpdateComposed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req composedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.composed.UpdateComposed(id, req.Name, req.Description, req.Category, req.Ingredients); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *CatalogController) DeleteComposed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ct.composed.DeleteComposed(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *CatalogController) ListComposed(c *gin.Context) {
	out, err := ct.composed.ListComposed()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /composed/:id/per100g
func (ct *CatalogController) ComposedPer100g(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.composed.Per100g(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
