// util/http_util.go
package util

import (
	logger "github.com/dev-rpatel/janus/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys under which the auth middleware stores the verified caller
// identity.
const (
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetCallerFromContext reads the authenticated username and role placed on
// the gin context by the auth middleware.
func GetCallerFromContext(c *gin.Context) (username, role string, ok bool) {
	usernameValue, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", "", false
	}
	roleValue, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", "", false
	}
	username, _ = usernameValue.(string)
	role, _ = roleValue.(string)
	return username, role, username != "" && role != ""
}
