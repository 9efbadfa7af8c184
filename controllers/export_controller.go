package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type ExportController struct {
	export *services.ExportService
}

func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{export: export}
}

// GET /export?week=3
func (ct *ExportController) Export(c *gin.Context) {
	var weekID uint
	if v := c.Query("week"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week"})
			return
		}
		weekID = uint(n)
	}
	out, err := ct.export.Export(weekID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /import
func (ct *ExportController) Import(c *gin.Context) {
	var env services.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	weekID, err := ct.export.Import(&env)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_id": weekID})
}
