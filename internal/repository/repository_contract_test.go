package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ecom-cart/internal/constants"
	"github.com/ecom-cart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSQLiteStoreTest(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_contract_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	store := NewGormStore(db)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

func storeFactories() map[string]func(t *testing.T) *Store {
	return map[string]func(t *testing.T) *Store{
		"memory": func(t *testing.T) *Store { return NewMemoryStore() },
		"sqlite": setupSQLiteStoreTest,
	}
}

func newCartItem(productID string, price string, qty int) models.CartItem {
	now := time.Now()
	return models.CartItem{
		ID:        "cart-" + productID + "-" + fmt.Sprint(now.UnixNano()),
		ProductID: productID,
		Name:      "商品 " + productID,
		Price:     models.Money{Decimal: decimal.RequireFromString(price)},
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newOrder(orderID, email string, at time.Time) *models.Order {
	return &models.Order{
		OrderID: orderID,
		CustomerInfo: models.CustomerInfo{
			Name:    "Alice",
			Email:   email,
			Address: "1 Main St",
			Phone:   "555-0100",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Mug", Price: models.NewMoneyFromFloat(10.5), Quantity: 2},
		},
		TotalAmount: models.NewMoneyFromFloat(21),
		Status:      constants.OrderStatusPending,
		OrderDate:   at,
	}
}

func TestCartRepositoryContract(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := factory(t).Cart()

			if _, err := repo.AddOrIncrement(ctx, newCartItem("1", "19.99", 2)); err != nil {
				t.Fatalf("add failed: %v", err)
			}
			item, err := repo.AddOrIncrement(ctx, newCartItem("1", "19.99", 3))
			if err != nil {
				t.Fatalf("add again failed: %v", err)
			}
			if item.Quantity != 5 {
				t.Fatalf("quantity want 5 got %d", item.Quantity)
			}
			if _, err := repo.AddOrIncrement(ctx, newCartItem("2", "5", 1)); err != nil {
				t.Fatalf("add second failed: %v", err)
			}

			items, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("items want 2 got %d", len(items))
			}

			updated, err := repo.UpdateQuantity(ctx, "2", 7)
			if err != nil {
				t.Fatalf("update failed: %v", err)
			}
			if updated == nil || updated.Quantity != 7 {
				t.Fatalf("updated quantity want 7 got %+v", updated)
			}
			missing, err := repo.UpdateQuantity(ctx, "404", 1)
			if err != nil || missing != nil {
				t.Fatalf("update missing want nil,nil got %+v,%v", missing, err)
			}

			removed, err := repo.Delete(ctx, "1")
			if err != nil || !removed {
				t.Fatalf("delete want true got %v,%v", removed, err)
			}
			removed, err = repo.Delete(ctx, "1")
			if err != nil || removed {
				t.Fatalf("delete again want false got %v,%v", removed, err)
			}

			if err := repo.Clear(ctx); err != nil {
				t.Fatalf("clear failed: %v", err)
			}
			items, err = repo.List(ctx)
			if err != nil {
				t.Fatalf("list after clear failed: %v", err)
			}
			if len(items) != 0 {
				t.Fatalf("items after clear want 0 got %d", len(items))
			}
		})
	}
}

func TestOrderRepositoryContract(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := factory(t).Orders()
			base := time.Now().Add(-time.Hour).Truncate(time.Second)

			if err := repo.Create(ctx, newOrder("o-1", "a@example.com", base)); err != nil {
				t.Fatalf("create o-1 failed: %v", err)
			}
			if err := repo.Create(ctx, newOrder("o-2", "b@example.com", base.Add(time.Minute))); err != nil {
				t.Fatalf("create o-2 failed: %v", err)
			}
			if err := repo.Create(ctx, newOrder("o-3", "a@example.com", base.Add(2*time.Minute))); err != nil {
				t.Fatalf("create o-3 failed: %v", err)
			}
			if err := repo.Create(ctx, newOrder("o-1", "c@example.com", base)); err != ErrDuplicateKey {
				t.Fatalf("duplicate create want ErrDuplicateKey got %v", err)
			}

			all, err := repo.List(ctx, OrderListFilter{})
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(all) != 3 || all[0].OrderID != "o-3" || all[2].OrderID != "o-1" {
				t.Fatalf("unexpected order list: %+v", all)
			}

			filtered, err := repo.List(ctx, OrderListFilter{Email: "a@example.com"})
			if err != nil {
				t.Fatalf("filtered list failed: %v", err)
			}
			if len(filtered) != 2 || filtered[0].OrderID != "o-3" || filtered[1].OrderID != "o-1" {
				t.Fatalf("unexpected filtered list: %+v", filtered)
			}

			got, err := repo.GetByOrderID(ctx, "o-2")
			if err != nil || got == nil {
				t.Fatalf("get o-2 failed: %v", err)
			}
			if len(got.Items) != 1 || got.Items[0].ProductName != "Mug" {
				t.Fatalf("order items not loaded: %+v", got.Items)
			}
			if !got.TotalAmount.Equal(decimal.NewFromInt(21)) {
				t.Fatalf("total want 21 got %s", got.TotalAmount.String())
			}
			missing, err := repo.GetByOrderID(ctx, "nope")
			if err != nil || missing != nil {
				t.Fatalf("get missing want nil,nil got %+v,%v", missing, err)
			}

			shipping := &models.ShippingInfo{TrackingNumber: "TRK1", Carrier: "UPS"}
			updated, err := repo.UpdateStatus(ctx, "o-2", constants.OrderStatusShipped, shipping)
			if err != nil || updated == nil {
				t.Fatalf("update status failed: %v", err)
			}
			if updated.Status != constants.OrderStatusShipped {
				t.Fatalf("status want shipped got %s", updated.Status)
			}
			if updated.ShippingInfo == nil || updated.ShippingInfo.TrackingNumber != "TRK1" {
				t.Fatalf("shipping info not saved: %+v", updated.ShippingInfo)
			}
			if updated.CustomerInfo.Email != "b@example.com" {
				t.Fatalf("customer info changed: %+v", updated.CustomerInfo)
			}
			missing, err = repo.UpdateStatus(ctx, "nope", constants.OrderStatusShipped, nil)
			if err != nil || missing != nil {
				t.Fatalf("update missing want nil,nil got %+v,%v", missing, err)
			}
		})
	}
}

func TestMemoryOrderRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()
	if err := repo.Create(ctx, newOrder("o-1", "a@example.com", time.Now())); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, _ := repo.GetByOrderID(ctx, "o-1")
	got.Status = constants.OrderStatusCancelled
	got.Items[0].Quantity = 99

	again, _ := repo.GetByOrderID(ctx, "o-1")
	if again.Status != constants.OrderStatusPending {
		t.Fatalf("status leaked: %s", again.Status)
	}
	if again.Items[0].Quantity != 2 {
		t.Fatalf("items leaked: %d", again.Items[0].Quantity)
	}
}
