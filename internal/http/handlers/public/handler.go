package public

import "github.com/ecom-cart/internal/provider"

// Handler 商城接口处理器入口（购物车、结算、订单、健康检查）
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
