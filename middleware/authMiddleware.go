package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/helpers"
)

// Authentication guards the staff surface: it verifies the token header
// and stows the tenant id on the context for the controllers.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			c.Abort()
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("tenant_id", claims.Uid)
		c.Next()
	}
}
