package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecom-cart/internal/constants"
	"github.com/ecom-cart/internal/logger"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutLine 结算行（来自请求体或服务端购物车）
type CheckoutLine struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"quantity"`
	Image     string       `json:"image,omitempty"`
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	// CartItems 为 nil 时使用服务端购物车，空切片视为空购物车
	CartItems    []CheckoutLine
	CustomerInfo models.CustomerInfo
}

// Receipt 结算回执，不落库
type Receipt struct {
	ID           string              `json:"id"`
	Items        []CheckoutLine      `json:"items"`
	Total        models.Money        `json:"total"`
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	Timestamp    string              `json:"timestamp"`
	Status       string              `json:"status"`
}

// CheckoutService 结算服务
type CheckoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) *CheckoutService {
	return &CheckoutService{cartRepo: cartRepo, orderRepo: orderRepo}
}

// Checkout 校验、生成订单、清空购物车并返回回执
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*Receipt, error) {
	lines := input.CartItems
	if lines == nil {
		items, err := s.cartRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		lines = checkoutLinesFromCart(items)
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrQuantityInvalid
		}
	}

	customer := input.CustomerInfo
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	if customer.Name == "" || customer.Email == "" {
		return nil, ErrCustomerInfoRequired
	}
	if !strings.Contains(customer.Email, "@") {
		return nil, ErrInvalidEmail
	}

	total := sumCheckoutLines(lines)
	now := time.Now()
	order := &models.Order{
		OrderID:      uuid.NewString(),
		CustomerInfo: customer,
		Items:        orderItemsFromLines(lines),
		TotalAmount:  total,
		Status:       constants.OrderStatusConfirmed,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// 订单已落库，清空失败只记录日志
	if err := s.cartRepo.Clear(ctx); err != nil {
		logger.Errorw("checkout_clear_cart_failed", "order_id", order.OrderID, "error", err)
	}

	return &Receipt{
		ID:           order.OrderID,
		Items:        lines,
		Total:        total,
		CustomerInfo: customer,
		Timestamp:    now.UTC().Format(constants.TimestampLayout),
		Status:       constants.ReceiptStatusCompleted,
	}, nil
}

func checkoutLinesFromCart(items []models.CartItem) []CheckoutLine {
	lines := make([]CheckoutLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CheckoutLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return lines
}

func orderItemsFromLines(lines []CheckoutLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Image:       line.Image,
		})
	}
	return items
}

func sumCheckoutLines(lines []CheckoutLine) models.Money {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}
