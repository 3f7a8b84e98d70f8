package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"snapnote/backend/internal/config"
	"snapnote/backend/internal/service"
	"snapnote/backend/pkg/logger"
	"snapnote/backend/pkg/metrics"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth   *AuthHandler
	Notes  *NoteHandler
	Tags   *TagHandler
	Users  *UserHandler
	Health *HealthHandler
}

// NewRouter wires middleware and the full route table. Credentialed CORS only
// admits the configured origins; a wildcard would break cookie auth anyway.
func NewRouter(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, authService service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(m.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to SnapNote Backend"})
	})
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := AuthRequired(authService)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", authRequired, h.Auth.Me)
	}

	notes := r.Group("/notes", authRequired)
	{
		notes.POST("/", h.Notes.Create)
		notes.GET("/", h.Notes.List)
		notes.DELETE("/archive/clear", h.Notes.ClearArchive)
		notes.GET("/:id", h.Notes.Get)
		notes.PUT("/:id", h.Notes.Update)
		notes.DELETE("/:id", h.Notes.Archive)
		notes.POST("/:id/restore", h.Notes.Restore)
		notes.DELETE("/:id/permanent", h.Notes.Purge)
	}

	tags := r.Group("/tags", authRequired)
	{
		tags.POST("/", h.Tags.Create)
		tags.GET("/", h.Tags.List)
		tags.DELETE("/:id", h.Tags.Delete)
	}

	users := r.Group("/users", authRequired)
	{
		users.PUT("/profile", h.Users.UpdateProfile)
	}

	return r
}
