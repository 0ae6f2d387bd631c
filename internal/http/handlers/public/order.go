package public

import (
	"strings"

	"github.com/ecom-cart/internal/http/response"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求，productName 缺省时取 name
type OrderItemRequest struct {
	ProductID   productIDField `json:"productId"`
	ProductName string         `json:"productName"`
	Name        string         `json:"name"`
	Price       models.Money   `json:"price"`
	Quantity    *float64       `json:"quantity"`
	Image       string         `json:"image"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerInfo *models.CustomerInfo `json:"customerInfo"`
	Items        []OrderItemRequest   `json:"items"`
	TotalAmount  *models.Money        `json:"totalAmount"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status       string               `json:"status"`
	ShippingInfo *models.ShippingInfo `json:"shippingInfo"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgInvalidBody, nil)
		return
	}

	input := service.CreateOrderInput{
		CustomerInfo: req.CustomerInfo,
		TotalAmount:  req.TotalAmount,
	}
	if req.Items != nil {
		input.Items = make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			name := strings.TrimSpace(item.ProductName)
			if name == "" {
				name = strings.TrimSpace(item.Name)
			}
			qty, ok := positiveInt(item.Quantity)
			if !ok {
				qty = 1
			}
			input.Items = append(input.Items, models.OrderItem{
				ProductID:   item.ProductID.String(),
				ProductName: name,
				Price:       item.Price,
				Quantity:    qty,
				Image:       item.Image,
			})
		}
	}

	order, err := h.OrderService.Create(c.Request.Context(), input)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// ListOrders 订单列表，支持 email 精确过滤
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch order history", err)
		return
	}
	response.Success(c, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.OrderService.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondWithMappedError(c, err, orderFetchErrorRules, response.CodeInternal, "Failed to fetch order")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgInvalidBody, nil)
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), c.Param("orderId"), service.UpdateOrderStatusInput{
		Status:       req.Status,
		ShippingInfo: req.ShippingInfo,
	})
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "Failed to update order status")
		return
	}
	response.Success(c, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// OrderStats 订单统计
func (h *Handler) OrderStats(c *gin.Context) {
	stats, err := h.OrderService.Stats(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch order statistics", err)
		return
	}
	response.Success(c, stats)
}
