package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

// actorFrom reads the caller identity placed on the context by JWTAuthMiddleware.
// It writes a 401 and returns false when there is none.
func actorFrom(c *gin.Context) (models.Actor, bool) {
	id := c.GetString("userID")
	role := c.GetString("role")
	if id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "no user in request context")
		return models.Actor{}, false
	}
	return models.Actor{ID: id, Role: models.Role(role)}, true
}

func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}
