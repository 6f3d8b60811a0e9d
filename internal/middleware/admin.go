package middleware

import (
	"net/http" // HTTP status codes

	"hobbymatch/internal/domain" // Importing domain models
	"hobbymatch/internal/store"  // Relationship store

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := st.UserByID(c.Request.Context(), userID)
		// Unknown users and non-admins are treated alike
		if err != nil || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Message})
			return
		}
		c.Next()
	}
}
