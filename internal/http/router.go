package http

import (
	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/auth"
)

// RouterConfig receives all handler dependencies, keeping the router
// testable and the parameter count down.
type RouterConfig struct {
	AuthController   *AuthController
	SyncController   *SyncController
	BooksController  *BooksController
	HealthController *HealthController
	JWTSecret        []byte
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.HealthController != nil {
		router.GET("/health", cfg.HealthController.Status)
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", cfg.AuthController.PostSignUp)
		authGroup.POST("/signin", cfg.AuthController.PostSignIn)
		authGroup.POST("/recover-password", cfg.AuthController.PostRecoverPassword)

		// Administrative repair endpoints
		admin := authGroup.Group("", auth.RequireAuth(cfg.JWTSecret), auth.RequireAdmin())
		admin.GET("/users", cfg.AuthController.GetUsers)
		admin.GET("/users/:id", cfg.AuthController.GetUserByID)
		admin.GET("/sync/:email", cfg.SyncController.SyncUser)
		admin.POST("/migrate-all", cfg.SyncController.MigrateAll)
	}

	if cfg.BooksController == nil {
		return router
	}

	booksGroup := router.Group("/books")
	{
		booksGroup.GET("", cfg.BooksController.List)
		booksGroup.GET("/:id", cfg.BooksController.Get)

		authed := booksGroup.Group("", auth.RequireAuth(cfg.JWTSecret))
		authed.POST("", cfg.BooksController.Create)
		authed.PUT("/:id", cfg.BooksController.Update)
		authed.POST("/:id/comments", cfg.BooksController.AddComment)
		authed.POST("/:id/ratings", cfg.BooksController.AddRating)

		adminOnly := booksGroup.Group("", auth.RequireAuth(cfg.JWTSecret), auth.RequireAdmin())
		adminOnly.DELETE("/:id", cfg.BooksController.Delete)
	}

	return router
}
