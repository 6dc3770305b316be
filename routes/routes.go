package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tavola/config"
	"tavola/handlers"
	"tavola/middleware"
)

// RegisterPublicRoutes registers the endpoints the booking page and the
// chatbot widget consume without authentication.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/fields", hb.Schema.ListFieldsHandler)
		api.GET("/available-slots", hb.Reservations.AvailableSlotsHandler)
		api.POST("/reservations", hb.Reservations.CreateReservationHandler)
		// The chatbot widget posts to /api/bookings; same handler.
		api.POST("/bookings", hb.Reservations.CreateReservationHandler)
		api.POST("/chat", hb.Chat.ChatMessageHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations. Everything
// except login sits behind the session cookie check.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin")
	adminGroup.POST("/login", hb.Admin.LoginHandler)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminAuth(hb.Sessions))
	{
		protected.GET("/logout", hb.Admin.LogoutHandler)
		protected.GET("/reservations", hb.Reservations.ListReservationsHandler)
		protected.GET("/fields", hb.Schema.ListFieldsHandler)
		protected.POST("/fields", hb.Schema.ReplaceFieldsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tavola"})
	})
}

// RegisterStaticRoutes serves the booking page and widget assets when a
// public directory is configured.
func RegisterStaticRoutes(r *gin.Engine) {
	if dir := config.AppConfig.PublicDir; dir != "" {
		r.Static("/static", dir)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The widget embeds on third-party pages, so CORS stays permissive.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterStaticRoutes(r)
}
