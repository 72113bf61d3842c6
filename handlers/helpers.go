package handlers

import (
	"net/http"

	"medicore/middleware"

	"github.com/gin-gonic/gin"
)

// accountID returns the authenticated account ID set by the auth middleware.
// It aborts with 401 when missing.
func accountID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.ContextAccountID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
