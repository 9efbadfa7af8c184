package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/services"
)

type ProfileController struct {
	profile *services.ProfileService
}

func NewProfileController(profile *services.ProfileService) *ProfileController {
	return &ProfileController{profile: profile}
}

func (ct *ProfileController) GetProfile(c *gin.Context) {
	out, err := ct.profile.Get()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ct *ProfileController) UpdateProfile(c *gin.Context) {
	var attrs services.ProfileAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	out, err := ct.profile.Update(attrs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /profile/targets returns just the derived numbers, for the day grid
// header.
func (ct *ProfileController) GetTargets(c *gin.Context) {
	out, err := ct.profile.Get()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Targets)
}
