package handlers

import (
	"net/http"

	"staywise/middleware"
	"staywise/models"

	"github.com/gin-gonic/gin"
)

// identityOrAbort fetches the authenticated caller placed by the auth
// middleware; missing identity on a protected route is a programming error in
// the route table, surfaced as 401.
func identityOrAbort(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return models.Identity{}, false
	}
	return identity, true
}
