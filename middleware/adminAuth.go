package middleware

import (
	"net/http"

	"medicore/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware authenticates requests carrying an admin token.
// Admin tokens are not backed by a stored account, the signature and role
// claim are the whole check.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		accountID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || role != utils.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextRole, utils.RoleAdmin)
		c.Set("isAdmin", true)
		c.Next()
	}
}
