package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecom-cart/internal/constants"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/repository"
)

func fullCustomer(email string) *models.CustomerInfo {
	return &models.CustomerInfo{Name: "Alice", Email: email, Address: "1 Main St", Phone: "555-0100"}
}

func orderItems() []models.OrderItem {
	return []models.OrderItem{{ProductID: "1", ProductName: "Mug", Price: money("10"), Quantity: 2}}
}

func seedOrder(t *testing.T, repo repository.OrderRepository, orderID, email, status string, amount string, at time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Order{
		OrderID:      orderID,
		CustomerInfo: *fullCustomer(email),
		Items:        orderItems(),
		TotalAmount:  money(amount),
		Status:       status,
		OrderDate:    at,
	})
	if err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
}

func TestOrderServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(repository.NewMemoryOrderRepository())
	total := money("20")

	order, err := svc.Create(ctx, CreateOrderInput{
		CustomerInfo: fullCustomer("a@example.com"),
		Items:        orderItems(),
		TotalAmount:  &total,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.OrderID == "" {
		t.Fatalf("expected order id")
	}
	got, err := svc.Get(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CustomerInfo.Email != "a@example.com" {
		t.Fatalf("unexpected customer: %+v", got.CustomerInfo)
	}
}

func TestOrderServiceCreateValidation(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryOrderRepository())
	total := money("20")
	partial := &models.CustomerInfo{Name: "Alice", Email: "a@example.com"}

	cases := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{name: "no customer", input: CreateOrderInput{Items: orderItems(), TotalAmount: &total}, want: ErrOrderFieldsRequired},
		{name: "no items", input: CreateOrderInput{CustomerInfo: fullCustomer("a@b.c"), TotalAmount: &total}, want: ErrOrderFieldsRequired},
		{name: "no total", input: CreateOrderInput{CustomerInfo: fullCustomer("a@b.c"), Items: orderItems()}, want: ErrOrderFieldsRequired},
		{name: "partial customer", input: CreateOrderInput{CustomerInfo: partial, Items: orderItems(), TotalAmount: &total}, want: ErrCustomerInfoMissing},
		{name: "empty items", input: CreateOrderInput{CustomerInfo: fullCustomer("a@b.c"), Items: []models.OrderItem{}, TotalAmount: &total}, want: ErrOrderItemsRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestOrderServiceListFiltersByEmailNewestFirst(t *testing.T) {
	repo := repository.NewMemoryOrderRepository()
	base := time.Now().Add(-time.Hour)
	seedOrder(t, repo, "o-1", "a@example.com", constants.OrderStatusPending, "10", base)
	seedOrder(t, repo, "o-2", "A@example.com", constants.OrderStatusPending, "10", base.Add(time.Minute))
	seedOrder(t, repo, "o-3", "a@example.com", constants.OrderStatusPending, "10", base.Add(2*time.Minute))
	svc := NewOrderService(repo)

	orders, err := svc.List(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 || orders[0].OrderID != "o-3" || orders[1].OrderID != "o-1" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryOrderRepository()
	seedOrder(t, repo, "o-1", "a@example.com", constants.OrderStatusPending, "10", time.Now())
	svc := NewOrderService(repo)

	if _, err := svc.UpdateStatus(ctx, "o-1", UpdateOrderStatusInput{}); !errors.Is(err, ErrOrderStatusRequired) {
		t.Fatalf("want ErrOrderStatusRequired got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "o-1", UpdateOrderStatusInput{Status: "lost"}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("want ErrOrderStatusInvalid got %v", err)
	}
	unchanged, _ := svc.Get(ctx, "o-1")
	if unchanged.Status != constants.OrderStatusPending {
		t.Fatalf("invalid status must not mutate, got %s", unchanged.Status)
	}
	if _, err := svc.UpdateStatus(ctx, "nope", UpdateOrderStatusInput{Status: constants.OrderStatusShipped}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, "o-1", UpdateOrderStatusInput{
		Status:       constants.OrderStatusShipped,
		ShippingInfo: &models.ShippingInfo{TrackingNumber: "TRK", Carrier: "DHL"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped || updated.ShippingInfo == nil || updated.ShippingInfo.Carrier != "DHL" {
		t.Fatalf("unexpected updated order: %+v", updated)
	}
}

func TestOrderServiceGetNotFound(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryOrderRepository())
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestOrderServiceStats(t *testing.T) {
	repo := repository.NewMemoryOrderRepository()
	base := time.Now().Add(-time.Hour)
	statuses := []string{
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	}
	for i, status := range statuses {
		seedOrder(t, repo, "o-"+string(rune('a'+i)), "a@example.com", status, "10.25", base.Add(time.Duration(i)*time.Minute))
	}
	seedOrder(t, repo, "other", "b@example.com", constants.OrderStatusPending, "99", base)
	svc := NewOrderService(repo)

	stats, err := svc.Stats(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalOrders != 6 {
		t.Fatalf("total orders want 6 got %d", stats.TotalOrders)
	}
	if stats.TotalAmount.String() != "61.50" {
		t.Fatalf("total amount want 61.50 got %s", stats.TotalAmount.String())
	}
	if stats.StatusBreakdown[constants.OrderStatusConfirmed] != 2 {
		t.Fatalf("confirmed count want 2 got %d", stats.StatusBreakdown[constants.OrderStatusConfirmed])
	}
	if len(stats.RecentOrders) != constants.RecentOrdersLimit {
		t.Fatalf("recent orders want %d got %d", constants.RecentOrdersLimit, len(stats.RecentOrders))
	}
	if stats.RecentOrders[0].OrderID != "o-f" {
		t.Fatalf("most recent want o-f got %s", stats.RecentOrders[0].OrderID)
	}
}
