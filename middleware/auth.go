// middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	logger "github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/util"
)

// CallerClaims is the token shape the upstream identity provider issues:
// the engine trusts these claims as the already-authenticated subject and
// never authenticates on its own.
type CallerClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Auth verifies the bearer token and places the caller identity on the
// request context for the enforcement point to read.
func Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims := &CallerClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected bearer token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if claims.Username == "" || claims.Role == "" {
			logger.Warn("Bearer token missing identity claims", zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(util.ContextKeyUsername, claims.Username)
		c.Set(util.ContextKeyRole, claims.Role)

		c.Next()
	}
}
