package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snapnote/backend/internal/config"
	"snapnote/backend/internal/service"
	"snapnote/backend/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
	cookieTTL   time.Duration
	crossSite   bool
}

func NewAuthHandler(authService service.AuthService, log *logger.Logger, cookieTTL time.Duration, crossSite bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
		cookieTTL:   cookieTTL,
		crossSite:   crossSite,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers an account and logs it in by setting the session cookie.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		h.log.WithError(err).Error("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
			return
		}
		h.log.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// Logout always succeeds from the client's point of view: the cookie is
// cleared even if the revocation write fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(config.AccessTokenCookie); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.log.WithError(err).Warn("token revocation failed")
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(config.AccessTokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.crossSite, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(config.AccessTokenCookie, "", -1, "/", "", h.crossSite, true)
}

// Cross-site deployments need SameSite=None with Secure; local development
// uses Lax without Secure so the cookie works over plain http.
func (h *AuthHandler) sameSite() http.SameSite {
	if h.crossSite {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
