package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	ProductID string
	Quantity  *int // nil 表示默认 1
	Name      string
	Price     models.Money
	Image     string
}

// CartView 购物车视图
type CartView struct {
	Items []models.CartItem `json:"items"`
	Total models.Money      `json:"total"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// List 获取购物车及合计金额
func (s *CartService) List(ctx context.Context) (*CartView, error) {
	items, err := s.cartRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]models.CartItem, 0)
	}
	return &CartView{Items: items, Total: sumCartItems(items)}, nil
}

// Add 加入购物车，同一商品累加数量
func (s *CartService) Add(ctx context.Context, input AddCartItemInput) (*models.CartItem, error) {
	productID := strings.TrimSpace(input.ProductID)
	name := strings.TrimSpace(input.Name)
	if productID == "" || name == "" || input.Price.IsZero() {
		return nil, ErrCartItemInvalid
	}
	if input.Price.IsNegative() {
		return nil, ErrCartItemInvalid
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	now := time.Now()
	return s.cartRepo.AddOrIncrement(ctx, models.CartItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      name,
		Price:     input.Price,
		Quantity:  quantity,
		Image:     strings.TrimSpace(input.Image),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateQuantity 覆盖购物车项数量
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	item, err := s.cartRepo.UpdateQuantity(ctx, strings.TrimSpace(productID), quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// Remove 移除购物车项
func (s *CartService) Remove(ctx context.Context, productID string) error {
	removed, err := s.cartRepo.Delete(ctx, strings.TrimSpace(productID))
	if err != nil {
		return err
	}
	if !removed {
		return ErrCartItemNotFound
	}
	return nil
}

func sumCartItems(items []models.CartItem) models.Money {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}
