package router

import (
	"fmt"

	"github.com/ecom-cart/internal/cache"
	"github.com/ecom-cart/internal/config"
	publichandlers "github.com/ecom-cart/internal/http/handlers/public"
	"github.com/ecom-cart/internal/http/response"
	"github.com/ecom-cart/internal/logger"
	"github.com/ecom-cart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.App.Mode(), cfg.Log.ToLoggerOptions())
	}
	response.SetExposeDetails(cfg.App.IsDevelopment())

	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := cache.Prefix()
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}
	orderCreateRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order_create", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(BodyLimitMiddleware(cfg.Server.MaxBodyBytes))
	r.Use(RequestBodyLogMiddleware(log))

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)

		cart := api.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.POST("", handler.AddToCart)
			cart.PUT("/:id", handler.UpdateCartItem)
			cart.DELETE("/:id", handler.RemoveFromCart)
		}

		api.POST("/checkout",
			RateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("customerInfo.email")),
			handler.Checkout,
		)

		orders := api.Group("/orders")
		{
			orders.POST("",
				RateLimitMiddleware(redisClient, orderCreateRule, KeyByIPAndJSONField("customerInfo.email")),
				handler.CreateOrder,
			)
			orders.GET("", handler.ListOrders)
			orders.GET("/stats", handler.OrderStats)
			orders.GET("/:orderId", handler.GetOrder)
			orders.PUT("/:orderId/status", handler.UpdateOrderStatus)
		}
	}

	r.NoRoute(response.RouteNotFound)

	return r
}
