package service

import (
	"errors"
	"testing"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	db := setupServiceTestDB(t, "cart_merge")
	product := createTestProduct(t, db, "mouse", "Mouse", "25.00", 10, true)

	svc := newTestCartService(db)
	first, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected merged into same row, got %d and %d", first.ID, second.ID)
	}
	if second.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", second.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single cart row, got %d", count)
	}
}

func TestAddItemRejectsLowQuantity(t *testing.T) {
	db := setupServiceTestDB(t, "cart_low_qty")
	product := createTestProduct(t, db, "pad", "Desk Pad", "14.00", 10, true)

	svc := newTestCartService(db)
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrCartQuantityTooLow) {
		t.Fatalf("expected quantity too low, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: -2}); !errors.Is(err, ErrCartQuantityTooLow) {
		t.Fatalf("expected quantity too low for negative, got: %v", err)
	}
}

func TestAddItemUnavailableProduct(t *testing.T) {
	db := setupServiceTestDB(t, "cart_unavailable")
	product := createTestProduct(t, db, "retired", "Retired Item", "9.00", 10, false)

	svc := newTestCartService(db)
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID + 100, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected not available for missing product, got: %v", err)
	}
}

func TestSetQuantityOwnership(t *testing.T) {
	db := setupServiceTestDB(t, "cart_set_qty")
	product := createTestProduct(t, db, "stand", "Laptop Stand", "35.00", 10, true)
	item := createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestCartService(db)
	updated, err := svc.SetQuantity(1, item.ID, 4)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Quantity)
	}

	if _, err := svc.SetQuantity(1, item.ID, 0); !errors.Is(err, ErrCartQuantityTooLow) {
		t.Fatalf("expected quantity too low, got: %v", err)
	}
	// 其他用户不可见该购物车项
	if _, err := svc.SetQuantity(2, item.ID, 3); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected not found for other user, got: %v", err)
	}
}

func TestRemoveItemOwnership(t *testing.T) {
	db := setupServiceTestDB(t, "cart_remove")
	product := createTestProduct(t, db, "hub", "USB Hub", "22.00", 10, true)
	item := createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestCartService(db)
	if err := svc.RemoveItem(2, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected not found for other user, got: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected not found after removal, got: %v", err)
	}
}

func TestListByUserSkipsRemovedProduct(t *testing.T) {
	db := setupServiceTestDB(t, "cart_list")
	kept := createTestProduct(t, db, "keyboard", "Keyboard", "45.00", 10, true)
	removed := createTestProduct(t, db, "gone", "Discontinued", "5.00", 10, true)
	createTestCartItem(t, db, 1, kept.ID, 2)
	createTestCartItem(t, db, 1, removed.ID, 1)

	if err := db.Delete(&models.Product{}, removed.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	svc := newTestCartService(db)
	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 row after product removal, got %d", len(details))
	}
	detail := details[0]
	if detail.ProductID != kept.ID {
		t.Fatalf("expected surviving product %d, got %d", kept.ID, detail.ProductID)
	}
	if !detail.Subtotal.Decimal.Equal(decimal.RequireFromString("90.00")) {
		t.Fatalf("expected subtotal 90.00, got %s", detail.Subtotal.Decimal)
	}
}

func TestClearCart(t *testing.T) {
	db := setupServiceTestDB(t, "cart_clear")
	product := createTestProduct(t, db, "bottle", "Bottle", "11.00", 10, true)
	createTestCartItem(t, db, 1, product.ID, 1)
	createTestCartItem(t, db, 2, product.ID, 2)

	svc := newTestCartService(db)
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	var mine, other int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&mine).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 2).Count(&other).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if mine != 0 {
		t.Fatalf("expected own cart cleared, got %d rows", mine)
	}
	if other != 1 {
		t.Fatalf("expected other user cart untouched, got %d rows", other)
	}
}
