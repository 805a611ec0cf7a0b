package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/MoguBox/blindbox-backend/api"
	"github.com/MoguBox/blindbox-backend/internal/platform/config"
	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/internal/platform/health"
	"github.com/MoguBox/blindbox-backend/internal/platform/shutdown"
	"github.com/MoguBox/blindbox-backend/internal/platform/startup"
	"github.com/MoguBox/blindbox-backend/pkg/lifecycle"
	"github.com/MoguBox/blindbox-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

func main() {
	defer logger.Init("blindbox-server", true, false, os.Stderr).Close()

	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("加载配置失败，无法启动: %v", err)
	}

	// 2. 生成本次进程的令牌签名密钥
	token.GenerateSecretKey()

	// 3. 初始化SQLite和Redis连接
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)
	health.InitializeRunID()

	// 4. 执行应用首次启动初始化流程（迁移、参数装配、缓存预热）
	if err := startup.InitializeApplication(); err != nil {
		logger.Fatalf("应用初始化失败，无法启动: %v", err)
	}

	// 5. 阻塞式执行一次启动后健康检查
	logger.Info("正在执行启动后健康检查...")
	health.PerformCheck()

	// 6. 创建生命周期管理器，异步启动后台健康检查器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	gracefulHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		logger.Fatalf("注册健康检查器失败: %v", err)
	}
	forcefulHandle, err := forcefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		logger.Fatalf("注册健康检查器失败: %v", err)
	}
	go health.StartRedisHealthCheck(gracefulHandle, forcefulHandle)

	// 7. 组装Gin引擎和路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	// 8. 启动HTTP服务器，并交由停机协调器接管信号处理
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		logger.Infof("服务器已准备就绪，开始监听 %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP服务器异常退出: %v", err)
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
