package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polyhub/timetable-back/internal/config"
	"github.com/polyhub/timetable-back/internal/models"
)

const userContextKey = "user"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		user, err := ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// LecturerOnly guards the mutating timetable endpoints.
func LecturerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsLecturer() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Lecturer role required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware, or the zero user
// when the request carries none. Store operations treat a zero user as
// "identity absent" and skip their side effects.
func CurrentUser(c *gin.Context) models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}
	}
	user, ok := v.(models.User)
	if !ok {
		return models.User{}
	}
	return user
}
