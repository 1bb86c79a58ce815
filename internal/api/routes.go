package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers) *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(corsMiddleware())

	// API routes
	api := router.Group("/api")
	{
		api.GET("/dashboard", handlers.GetDashboardHandler)
		api.GET("/calendar", handlers.GetCalendarHandler)
		api.GET("/approvals", handlers.GetApprovalsHandler)

		employees := api.Group("/employees")
		{
			employees.GET("", handlers.GetEmployeesHandler)
			employees.GET("/performance", handlers.GetPerformanceHandler)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", handlers.CreateTaskHandler)
			tasks.POST("/:taskId/approve", handlers.ApproveTaskHandler)
			tasks.POST("/:taskId/revision", handlers.RequestRevisionHandler)
			tasks.GET("/:taskId/revision-draft", handlers.GetRevisionDraftHandler)
			tasks.PUT("/:taskId/revision-draft", handlers.SaveRevisionDraftHandler)
			tasks.POST("/:taskId/posted", handlers.MarkPostedHandler)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", handlers.GetReportHandler)
			reports.GET("/export", handlers.ExportReportHandler)
			reports.POST("/send-email", handlers.SendReportEmailHandler)
		}
	}

	// Websocket endpoint for snapshot-change notifications
	router.GET("/ws", handlers.SnapshotStreamHandler)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
