package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jose "github.com/go-jose/go-jose/v3"
	"github.com/seastone/gatehouse/service"
)

// SetupRouter sets up the gin router. Routes outside the protected group
// form the public allow-list: login, refresh, logout, the key set and the
// health check are reachable without an access token; everything else
// passes through AuthMiddleware first.
func SetupRouter(authService *service.AuthService, keySet jose.JSONWebKeySet) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService)

	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
	}

	// Public half of the signing key, so downstream services can verify
	// access tokens without calling back here.
	router.GET("/.well-known/jwks.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, keySet)
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user := router.Group("/user")
	user.Use(AuthMiddleware(authService))
	{
		user.GET("/profile", handlers.Profile)
	}

	return router
}
