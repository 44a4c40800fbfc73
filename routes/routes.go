package routes

import (
	"github.com/renukakulkarni2721/MindMirror/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, reflectionController *controllers.ReflectionController) {
	api := r.Group("/api/v1")
	{
		api.POST("/analysis/daily", reflectionController.CreateDailyAnalysis)
		api.POST("/analysis/weekly", reflectionController.CreateWeeklyAnalysis)
		api.GET("/reflections", reflectionController.GetReflections)
		api.GET("/reflections/date", reflectionController.GetReflectionForDate)
		api.GET("/reflections/:id/status", reflectionController.GetReflectionStatus)
		api.DELETE("/reflections/:id", reflectionController.DeleteReflection)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
