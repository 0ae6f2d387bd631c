package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/ecom-cart/internal/app"
	"github.com/ecom-cart/internal/config"
	"github.com/ecom-cart/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.App.Mode(), cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	printStartupBanner(cfg)

	// 设置 Gin 模式
	gin.SetMode(cfg.App.Mode())

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(cfg *config.Config) {
	fmt.Println(ansiCyan + ansiBold + "ecom-cart API" + ansiReset)
	fmt.Println(ansiDim + fmt.Sprintf("env=%s port=%s storage=%s", cfg.App.Env, cfg.Server.Port, cfg.Database.Driver) + ansiReset)
}
