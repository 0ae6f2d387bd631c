package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ecom-cart/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// List 按下单时间倒序返回订单
	List(ctx context.Context, filter OrderListFilter) ([]models.Order, error)
	// GetByOrderID 订单不存在时返回 nil, nil
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	// UpdateStatus 覆盖状态，shipping 非空时同时覆盖物流信息；订单不存在时返回 nil, nil
	UpdateStatus(ctx context.Context, orderID, status string, shipping *models.ShippingInfo) (*models.Order, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// List 订单列表
func (r *GormOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	query := r.withItems(r.db.WithContext(ctx).Model(&models.Order{}))
	if filter.Email != "" {
		query = query.Where("customer_email = ?", filter.Email)
	}
	if err := query.Order("order_date desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByOrderID 根据订单编号获取订单
func (r *GormOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.withItems(r.db.WithContext(ctx)).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID, status string, shipping *models.ShippingInfo) (*models.Order, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if shipping != nil {
		updates["shipping_info"] = *shipping
	}
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_id = ?", orderID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByOrderID(ctx, orderID)
}
