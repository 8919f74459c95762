package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ewaste/utils"
)

// Authenticate verifies the bearer token and stores the proven identity in
// the request context. The user id always comes from the token, never from
// the request body, so nobody can submit on another account's behalf.
func Authenticate(c *gin.Context) {
	raw := c.GetHeader("Authorization")
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token"})
		return
	}
	token := strings.TrimPrefix(raw, "Bearer ")

	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	c.Set("userId", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("isAdmin", claims.IsAdmin)
	c.Next()
}

// RequireAdmin must be mounted after Authenticate.
func RequireAdmin(c *gin.Context) {
	if !c.GetBool("isAdmin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin only"})
		return
	}
	c.Next()
}
