package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type ShoppingController struct {
	shopping *services.ShoppingService
}

func NewShoppingController(shopping *services.ShoppingService) *ShoppingController {
	return &ShoppingController{shopping: shopping}
}

// GET /weeks/:id/shopping
func (ct *ShoppingController) Aggregate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.shopping.Aggregate(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *ShoppingController) ListChecked(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := ct.shopping.ListChecked(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *ShoppingController) SetChecked(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := idParam(c, "foodId")
	if !ok {
		return
	}
	var req struct {
		Checked bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := ct.shopping.SetChecked(id, foodID, req.Checked); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
