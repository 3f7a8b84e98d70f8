package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapnote/backend/internal/config"
	"snapnote/backend/internal/models"
	"snapnote/backend/internal/service"
)

const userContextKey = "currentUser"

// AuthRequired resolves the session cookie to a user and aborts with 401
// otherwise. Missing cookie, bad signature, expiry and a vanished user all
// collapse to one generic message.
func AuthRequired(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(config.AccessTokenCookie)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				abortUnauthenticated(c)
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			}
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
}

// CurrentUser returns the user stashed by AuthRequired. Handlers behind the
// middleware may assume it is non-nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
