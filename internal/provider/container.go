package provider

import (
	"context"
	"time"

	"github.com/ecom-cart/internal/cache"
	"github.com/ecom-cart/internal/config"
	"github.com/ecom-cart/internal/logger"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/repository"
	"github.com/ecom-cart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	Store  *repository.Store

	// Repositories
	CartRepo  repository.CartRepository
	OrderRepo repository.OrderRepository

	// Services
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
}

// NewContainer 初始化容器：连接存储（失败回退内存）并组装服务
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	store := repository.Open(ctx, StoreOptions(cfg))
	return NewContainerWithStore(cfg, store)
}

// NewContainerWithStore 使用已打开的存储组装容器
func NewContainerWithStore(cfg *config.Config, store *repository.Store) *Container {
	c := &Container{
		Config: cfg,
		Store:  store,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

// StoreOptions 由配置生成存储打开参数
func StoreOptions(cfg *config.Config) repository.OpenOptions {
	return repository.OpenOptions{
		Driver:         cfg.Database.Driver,
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Name,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
		Debug: !cfg.App.IsProduction(),
	}
}

// Close 释放存储与缓存连接
func (c *Container) Close(ctx context.Context) error {
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	return c.Store.Close(ctx)
}

func (c *Container) initRepositories() {
	c.CartRepo = c.Store.Cart()
	c.OrderRepo = c.Store.Orders()
}

func (c *Container) initServices() {
	c.CartService = service.NewCartService(c.CartRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
}
