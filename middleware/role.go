package middleware

import (
	"net/http"
	"strings"

	"carrental/models"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets through only callers whose role is one of roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
		names = append(names, string(r))
	}
	details := "only " + strings.Join(names, ", ") + " may perform this action"

	return func(c *gin.Context) {
		if !allowed[c.GetString("role")] {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: utils.PermissionDenied, Details: details})
			return
		}
		c.Next()
	}
}
