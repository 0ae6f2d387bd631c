package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecom-cart/internal/cache"
	"github.com/ecom-cart/internal/constants"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderCacheTTL = 5 * time.Minute

func orderCacheKey(orderID string) string {
	return "order:" + orderID
}

// orderCache 订单详情缓存
type orderCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// redisOrderCache 基于全局 Redis 客户端，未启用时为空操作
type redisOrderCache struct{}

func (redisOrderCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return cache.GetJSON(ctx, key, dest)
}

func (redisOrderCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return cache.SetJSON(ctx, key, value, ttl)
}

func (redisOrderCache) Del(ctx context.Context, key string) error {
	return cache.Del(ctx, key)
}

// CreateOrderInput 创建订单输入，指针/切片为 nil 表示字段缺失
type CreateOrderInput struct {
	CustomerInfo *models.CustomerInfo
	Items        []models.OrderItem
	TotalAmount  *models.Money
}

// UpdateOrderStatusInput 更新订单状态输入
type UpdateOrderStatusInput struct {
	Status       string
	ShippingInfo *models.ShippingInfo
}

// OrderStats 订单统计
type OrderStats struct {
	TotalOrders     int            `json:"totalOrders"`
	TotalAmount     models.Money   `json:"totalAmount"`
	StatusBreakdown map[string]int `json:"statusBreakdown"`
	RecentOrders    []models.Order `json:"recentOrders"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	cache     orderCache
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, cache: redisOrderCache{}}
}

// Create 创建待处理订单
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.CustomerInfo == nil || input.Items == nil || input.TotalAmount == nil || input.TotalAmount.IsZero() {
		return nil, ErrOrderFieldsRequired
	}
	customer := models.CustomerInfo{
		Name:    strings.TrimSpace(input.CustomerInfo.Name),
		Email:   strings.TrimSpace(input.CustomerInfo.Email),
		Address: strings.TrimSpace(input.CustomerInfo.Address),
		Phone:   strings.TrimSpace(input.CustomerInfo.Phone),
	}
	if customer.Name == "" || customer.Email == "" || customer.Address == "" || customer.Phone == "" {
		return nil, ErrCustomerInfoMissing
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderItemsRequired
	}
	if input.TotalAmount.IsNegative() {
		return nil, ErrOrderFieldsRequired
	}

	now := time.Now()
	order := &models.Order{
		OrderID:      uuid.NewString(),
		CustomerInfo: customer,
		Items:        append([]models.OrderItem(nil), input.Items...),
		TotalAmount:  *input.TotalAmount,
		Status:       constants.OrderStatusPending,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List 订单列表，email 为空时返回全部
func (s *OrderService) List(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orderRepo.List(ctx, repository.OrderListFilter{Email: strings.TrimSpace(email)})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]models.Order, 0)
	}
	return orders, nil
}

// Get 获取订单，Redis 启用时缓存订单详情
func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	orderID = strings.TrimSpace(orderID)
	var cached models.Order
	if hit, cacheErr := s.cache.GetJSON(ctx, orderCacheKey(orderID), &cached); cacheErr == nil && hit {
		return &cached, nil
	}
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	_ = s.cache.SetJSON(ctx, orderCacheKey(orderID), order, orderCacheTTL)
	return order, nil
}

// UpdateStatus 更新订单状态与物流信息
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, input UpdateOrderStatusInput) (*models.Order, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		return nil, ErrOrderStatusRequired
	}
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	orderID = strings.TrimSpace(orderID)
	key := orderCacheKey(orderID)
	// 更新前后各删一次，避免并发 Get 把旧记录回填进缓存
	_ = s.cache.Del(ctx, key)
	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status, input.ShippingInfo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	_ = s.cache.Del(ctx, key)
	return order, nil
}

// Stats 订单统计
func (s *OrderService) Stats(ctx context.Context, email string) (*OrderStats, error) {
	orders, err := s.List(ctx, email)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	breakdown := make(map[string]int)
	for _, order := range orders {
		total = total.Add(order.TotalAmount.Decimal)
		breakdown[order.Status]++
	}
	recent := orders
	if len(recent) > constants.RecentOrdersLimit {
		recent = recent[:constants.RecentOrdersLimit]
	}
	return &OrderStats{
		TotalOrders:     len(orders),
		TotalAmount:     models.NewMoneyFromDecimal(total),
		StatusBreakdown: breakdown,
		RecentOrders:    recent,
	}, nil
}
