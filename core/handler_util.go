package core

import "github.com/gin-gonic/gin"

// respondError sends unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// currentUser reads the identity attached by AuthRequired.
func currentUser(c *gin.Context) (int64, string, bool) {
	idAny, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, "", false
	}
	id, ok := idAny.(int64)
	if !ok || id <= 0 {
		return 0, "", false
	}
	username, _ := c.Get(ctxUsernameKey)
	name, _ := username.(string)
	return id, name, true
}
