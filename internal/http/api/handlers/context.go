package handlers

import "github.com/gin-gonic/gin"

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// CurrentUserID returns the authenticated user ID set by the auth middleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
