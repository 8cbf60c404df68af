package http

import (
	"github.com/gin-gonic/gin"

	"tasktime/internal/adapter/http/handlers"
	"tasktime/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		tasks := api.Group("/tasks", middleware.SessionMiddleware())
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
	}
}
