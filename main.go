package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renukakulkarni2721/MindMirror/config"
	"github.com/renukakulkarni2721/MindMirror/controllers"
	"github.com/renukakulkarni2721/MindMirror/middleware"
	"github.com/renukakulkarni2721/MindMirror/routes"
	"github.com/renukakulkarni2721/MindMirror/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置，缺少模型密钥时直接失败
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 初始化日志
	if err := config.InitLogger(conf.Environment); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}

	// 初始化Redis（可选，仅用于每日分析额度）
	var quotaService *services.QuotaService
	if conf.RedisConfigured() {
		if err := config.InitRedis(conf); err != nil {
			log.Fatalf("无法初始化Redis: %v", err)
		}
		quotaService = services.NewQuotaService(config.RedisClient, conf.DailyAnalysisQuota)
	}

	// 初始化Gemini客户端
	geminiClient, err := services.NewGeminiClient(context.Background(), conf.GeminiAPIKey, conf.GeminiModel)
	if err != nil {
		log.Fatalf("无法初始化Gemini客户端: %v", err)
	}

	// 组装服务
	analysisService := services.NewAnalysisService(geminiClient)
	store := services.NewReflectionStore(config.DB)
	reflectionController := controllers.NewReflectionController(analysisService, store, quotaService, conf.AudioSupported)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r, conf.FrontendOrigin)

	// 注册路由
	routes.RegisterRoutes(r, reflectionController)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		config.Logger.Infow("启动服务器", "port", conf.ServerPort, "audioSupported", conf.AudioSupported)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	config.Logger.Infow("服务器已关闭")
}
