package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ecom-cart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	List(ctx context.Context) ([]models.CartItem, error)
	// AddOrIncrement 商品已存在时按 item.Quantity 累加数量，否则插入新项
	AddOrIncrement(ctx context.Context, item models.CartItem) (*models.CartItem, error)
	// UpdateQuantity 覆盖数量，商品不存在时返回 nil, nil
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, productID string) (bool, error)
	Clear(ctx context.Context) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// List 获取购物车项
func (r *GormCartRepository) List(ctx context.Context) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement 添加购物车项或累加数量
func (r *GormCartRepository) AddOrIncrement(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": item.UpdatedAt,
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}
	var saved models.CartItem
	if err := db.Where("product_id = ?", item.ProductID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var item models.CartItem
	if err := db.Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Delete 删除购物车项
func (r *GormCartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.CartItem{}).Error
}
