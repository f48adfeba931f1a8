package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"railbot/handlers"
	"railbot/utils"
)

// RegisterChatRoutes registers the conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/stream", hb.ChatStreamHandler)
		api.GET("/history", hb.GetChatHistory)
		api.POST("/clear", hb.ClearChatHandler)
	}
}

// RegisterTrainRoutes registers the train inventory endpoints.
func RegisterTrainRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trains")
	{
		api.GET("", hb.GetTrainsHandler)
		api.POST("", hb.AddTrainHandler)
		api.PUT("/:id", hb.UpdateTrainHandler)
		api.DELETE("/:id", hb.DeleteTrainHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterTrainRoutes(r, hb)
	RegisterHealthRoute(r)
}
