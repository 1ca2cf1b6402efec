package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alumni-client/config"
	"alumni-client/internal/mockapi"
	"alumni-client/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 本地开发用的桩后端，实现客户端依赖的全部 REST 契约
func main() {
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	if config.AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := os.Getenv("MOCKAPI_SECRET")
	if secret == "" {
		secret = "mockapi-dev-secret"
	}
	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	// 配置 CORS，前端开发服务器跨域访问
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	server := mockapi.NewServer(secret)
	router := server.Router(cors.New(corsConfig))

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		util.Logger.Info("桩后端正在启动", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动桩后端失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭桩后端...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("桩后端强制关闭", zap.Error(err))
	}

	util.Logger.Info("桩后端已优雅关闭")
}
