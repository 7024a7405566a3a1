package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/response"
)

// RequireSuperAdmin restricts a route to platform administrators. Staff
// admins (survey owners) are rejected.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != model.RoleSuperAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrSuperAdminOnly)
			return
		}

		c.Next()
	}
}
