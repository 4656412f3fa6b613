package routes

import (
	"net/http"
	"time"

	"tempo/handlers"
	"tempo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers the schedule engine endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/conflicts", hb.GetConflictsHandler)
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.GET("/days", hb.GetDaySchedulesHandler)
		api.GET("/analytics", hb.GetAnalyticsHandler)
		api.GET("/recommendations", hb.GetRecommendationsHandler)
		api.POST("/recommendations/execute", hb.ExecuteRecommendationHandler)
		api.POST("/digest", hb.TriggerDigestHandler)
	}
}

// RegisterPolicyRoutes registers policy read/write endpoints.
func RegisterPolicyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/policy")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.GetPolicyHandler)
		api.PUT("", hb.UpdatePolicyHandler)
	}
}

// RegisterAssistantRoutes registers the conversational endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/chat", hb.AssistantChatHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tempo"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, hb)
	RegisterPolicyRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterHealthRoute(r)
}
