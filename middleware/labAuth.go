package middleware

import (
	"net/http"
	"strings"

	"medibook/config"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthLabMiddleware authenticates the lab assistant. The token subject must
// match the configured lab assistant email.
func JWTAuthLabMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied, token missing"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subject == "" || subject != config.AppConfig.LabAssistantEmail {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("labAssistant", subject)
		c.Next()
	}
}
