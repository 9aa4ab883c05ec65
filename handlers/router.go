package handlers

import (
	"log/slog"
	"time"

	"schedule-bot/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(scheduleHandler *ScheduleHandler, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		// Chat transport
		api.GET("/schedule/start", scheduleHandler.Start)
		api.POST("/schedule/callback", scheduleHandler.Callback)
		api.GET("/schedule/:date", scheduleHandler.GetSchedule)
		api.GET("/schedule/:date/export", scheduleHandler.ExportSchedule)

		// Cache management
		api.POST("/cache/invalidate", scheduleHandler.InvalidateCache)
	}

	return router
}
