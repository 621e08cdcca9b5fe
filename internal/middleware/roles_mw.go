package middleware

import (
	"errors"
	"net/http"

	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware checks the caller's stored role; the role claim in the token is not trusted.
// Must run after JWTAuthMiddleware.
func AdminMiddleware(guard service.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(AuthUserKey)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		profile, err := guard.RequireAdmin(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(AuthRoleKey, model.RoleAdmin)
		c.Set(AuthEmailKey, profile.Email)
		c.Next()
	}
}
