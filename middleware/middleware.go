package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupMiddleware 配置中间件，跨域来源由部署配置指定
func SetupMiddleware(r *gin.Engine, frontendOrigin string) {
	allowOrigins := []string{"*"}
	if frontendOrigin != "" {
		allowOrigins = []string{frontendOrigin}
	}

	// CORS中间件
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 请求日志中间件
	r.Use(RequestLogger())

	// 错误恢复中间件
	r.Use(gin.Recovery())
}
