package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	pkgAuth "github.com/ahmedmubarak14/poconfirm/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated principal identifier.
	UserIDContextKey = "userID"
	authCookieName   = "poconfirm_token"
)

// TokenParser resolves a session token to a principal identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// RoleLookup reads a principal's role fresh from the store.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID int64) (model.Role, error)
}

// AuthRequired ensures the request carries a valid session token before
// reaching the handler. Only the principal identifier is taken from the
// token; roles are never trusted from it.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// AdminRequired ensures the authenticated principal holds the admin role,
// looked up from the store per request.
func AdminRequired(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, _ := val.(int64)

		role, err := roles.RoleOf(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if role != model.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

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
