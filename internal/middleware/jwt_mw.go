package middleware

import (
	"net/http"
	"strings"

	"car_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey  = "authUser"
	AuthEmailKey = "authEmail"
	AuthRoleKey  = "authRole"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		// every verification failure gets the same answer
		claim, err := jwtUtil.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(AuthUserKey, claim.UserID)
		c.Set(AuthEmailKey, claim.Email)
		c.Set(AuthRoleKey, claim.Role)

		c.Next()
	}
}
