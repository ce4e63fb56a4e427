package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trywilco/secure-info-concierge/middleware"
)

// HandleCurrentUser returns the authenticated principal.
func HandleCurrentUser(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, principal)
}
