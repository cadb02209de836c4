package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/services/driver"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	DriverService driver.DriverService
}

func NewDriverHandler(svc driver.DriverService) *DriverHandler {
	return &DriverHandler{DriverService: svc}
}

// UpdateLocationHandler handles PUT /api/drivers/me/location.
func (h *DriverHandler) UpdateLocationHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var loc models.GeoLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.DriverService.UpdateLocation(c.Request.Context(), actor, loc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DriverHandler) GetLocationHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	out, err := h.DriverService.GetLocation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
