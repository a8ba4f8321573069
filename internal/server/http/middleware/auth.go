package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/pkg/auth"
)

const (
	// AgentIDContextKey is a gin context key for the authenticated agent.
	AgentIDContextKey = "agentID"
	authCookieName    = "collections_token"
)

// TokenParser resolves a token to an agent identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired ensures an agent is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		agentID, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(AgentIDContextKey, agentID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
