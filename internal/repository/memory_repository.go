package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ecom-cart/internal/models"
)

// MemoryCartRepository 进程内购物车实现
type MemoryCartRepository struct {
	mu    sync.RWMutex
	items []models.CartItem
}

// NewMemoryCartRepository 创建进程内购物车仓库
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{}
}

// List 获取购物车项
func (r *MemoryCartRepository) List(ctx context.Context) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.CartItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// AddOrIncrement 添加购物车项或累加数量
func (r *MemoryCartRepository) AddOrIncrement(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ProductID == item.ProductID {
			r.items[i].Quantity += item.Quantity
			r.items[i].UpdatedAt = item.UpdatedAt
			saved := r.items[i]
			return &saved, nil
		}
	}
	r.items = append(r.items, item)
	return &item, nil
}

// UpdateQuantity 更新购物车项数量
func (r *MemoryCartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ProductID == productID {
			r.items[i].Quantity = quantity
			r.items[i].UpdatedAt = time.Now()
			saved := r.items[i]
			return &saved, nil
		}
	}
	return nil, nil
}

// Delete 删除购物车项
func (r *MemoryCartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clear 清空购物车（整体替换为空列表）
func (r *MemoryCartRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

// MemoryOrderRepository 进程内订单实现
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewMemoryOrderRepository 创建进程内订单仓库
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// Create 保存订单
func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderID == order.OrderID {
			return ErrDuplicateKey
		}
	}
	r.orders = append(r.orders, order.Clone())
	return nil
}

// List 订单列表
func (r *MemoryOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	r.mu.RLock()
	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Email != "" && order.CustomerInfo.Email != filter.Email {
			continue
		}
		orders = append(orders, order.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

// GetByOrderID 根据订单编号获取订单
func (r *MemoryOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.OrderID == orderID {
			found := order.Clone()
			return &found, nil
		}
	}
	return nil, nil
}

// UpdateStatus 更新订单状态
func (r *MemoryOrderRepository) UpdateStatus(ctx context.Context, orderID, status string, shipping *models.ShippingInfo) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderID != orderID {
			continue
		}
		r.orders[i].Status = status
		if shipping != nil {
			info := *shipping
			r.orders[i].ShippingInfo = &info
		}
		r.orders[i].UpdatedAt = time.Now()
		updated := r.orders[i].Clone()
		return &updated, nil
	}
	return nil, nil
}
