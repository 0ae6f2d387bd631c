package public

import (
	"context"
	"time"

	"github.com/ecom-cart/internal/cache"
	"github.com/ecom-cart/internal/constants"
	handlershared "github.com/ecom-cart/internal/http/handlers/shared"
	"github.com/ecom-cart/internal/http/response"

	"github.com/gin-gonic/gin"
)

const healthProbeTimeout = 2 * time.Second

// Health 健康检查，database 为启动时选定的存储后端
// 探测失败只记录日志，响应结构保持不变。
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		handlershared.RequestLog(c).Warnw("health_store_ping_failed", "backend", h.Store.BackendName(), "error", err)
	}
	if err := cache.Ping(ctx); err != nil {
		handlershared.RequestLog(c).Warnw("health_redis_ping_failed", "error", err)
	}

	response.Success(c, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(constants.TimestampLayout),
		"database":  h.Store.BackendName(),
	})
}
