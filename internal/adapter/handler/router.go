package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/middleware"
	"github.com/corvidlabs/reviewdesk/pkg/jwt"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Project *ProjectHandler
	Member  *MemberHandler
	Version *VersionHandler
	Panel   *PanelHandler
	Events  *EventsHandler
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers, jwtManager *jwt.JWTManager) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.RefreshToken)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		// Auth routes (protected)
		protected.POST("/auth/logout", handlers.Auth.Logout)

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/me", handlers.User.GetMe)
			users.PUT("/me", handlers.User.UpdateMe)
			users.PUT("/me/password", handlers.Auth.ChangePassword)
		}

		// Project routes
		projects := protected.Group("/projects")
		{
			projects.GET("", handlers.Project.List)
			projects.POST("", handlers.Project.Create)
			projects.GET("/:project_id", handlers.Project.GetByID)
			projects.PUT("/:project_id", handlers.Project.Update)
			projects.DELETE("/:project_id", handlers.Project.Delete)

			// Membership routes
			projects.GET("/:project_id/members", handlers.Member.ListByProject)
			projects.POST("/:project_id/members", handlers.Member.Grant)
			projects.PUT("/:project_id/members/:user_id", handlers.Member.Update)
			projects.DELETE("/:project_id/members/:user_id", handlers.Member.Revoke)

			// Version routes scoped to a project
			projects.GET("/:project_id/versions", handlers.Version.ListByProject)
			projects.POST("/:project_id/versions", handlers.Version.Create)
			projects.PUT("/:project_id/versions/:version_id", handlers.Version.Update)
		}

		// Version routes addressed by version id
		versions := protected.Group("/versions")
		{
			versions.GET("/:version_id", handlers.Version.GetByID)
			versions.DELETE("/:version_id", handlers.Version.Delete)
			versions.POST("/:version_id/approve", handlers.Version.Approve)
		}
	}

	// WebSocket routes (needs special handling)
	// Note: Authentication is handled within the handler
	router.GET("/api/v1/projects/:project_id/panel/ws", handlers.Panel.Connect)
	router.GET("/api/v1/projects/:project_id/events/ws", handlers.Events.Subscribe)
}
