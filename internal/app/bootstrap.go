package app

import (
	"context"
	"errors"
	"time"

	"github.com/ecom-cart/internal/config"
	"github.com/ecom-cart/internal/logger"
	"github.com/ecom-cart/internal/provider"
	"github.com/ecom-cart/internal/router"
)

// BuildRunner 构建服务运行器
// 存储在此处一次性选定，之后不再切换。
func BuildRunner(ctx context.Context, cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(ctx, cfg)

	engine := router.SetupRouter(cfg, container)
	httpService := NewHTTPService(cfg.Server, engine)

	// 停止顺序与注册顺序一致：先停 HTTP，再释放存储
	return NewRunner(httpService, NewStoreService(container)), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout(opts.Config))
	runner, err := BuildRunner(connectCtx, opts.Config)
	cancel()
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config.Server),
		"env", opts.Config.App.Env,
	)
	return RunWithOptions(runner, opts)
}

func connectTimeout(cfg *config.Config) time.Duration {
	seconds := cfg.Database.ConnectTimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	// 预留 ping 与建索引的时间
	return time.Duration(seconds)*time.Second + 5*time.Second
}

func listenAddr(cfg config.ServerConfig) string {
	return cfg.Host + ":" + cfg.Port
}

// StoreService 存储生命周期，仅在停止时释放连接
type StoreService struct {
	container *provider.Container
}

// NewStoreService 创建存储生命周期服务
func NewStoreService(container *provider.Container) *StoreService {
	return &StoreService{container: container}
}

// Name 服务名称
func (s *StoreService) Name() string {
	return "store"
}

// Start 阻塞直到运行器退出
func (s *StoreService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 关闭存储与缓存
func (s *StoreService) Stop(ctx context.Context) error {
	if s == nil || s.container == nil {
		return nil
	}
	if err := s.container.Close(ctx); err != nil {
		return err
	}
	logger.Infow("store_closed", "backend", s.container.Store.BackendName())
	return nil
}
