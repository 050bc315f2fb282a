package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-shop/internal/constants"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupServiceTestDB 打开独立的内存库并绑定全局 DB（服务层事务依赖 models.DB）
func setupServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductSizeMeasurement{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryAddress{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, slug, name, price string, stock int, available bool) models.Product {
	t.Helper()
	now := time.Now()
	product := models.Product{
		Slug:          slug,
		Name:          name,
		Price:         models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: stock,
		IsAvailable:   available,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestCartItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) models.CartItem {
	t.Helper()
	now := time.Now()
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	return item
}

func newTestOrderService(db *gorm.DB, enforceStock bool) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
		enforceStock,
	)
}

func TestCreateOrderConvertsCart(t *testing.T) {
	db := setupServiceTestDB(t, "order_create")
	headset := createTestProduct(t, db, "headset", "Wireless Headset", "10.00", 5, true)
	cable := createTestProduct(t, db, "cable", "USB-C Cable", "5.50", 8, true)
	createTestCartItem(t, db, 1, headset.ID, 2)
	createTestCartItem(t, db, 1, cable.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected pending_payment, got %s", order.Status)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected generated order no")
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("expected total 25.50, got %s", order.TotalAmount.Decimal)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Status != constants.OrderStatusPendingPayment {
			t.Fatalf("expected item pending_payment, got %s", item.Status)
		}
		if item.ProductName == "" {
			t.Fatalf("expected product name snapshot")
		}
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d rows", cartCount)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, headset.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 3 {
		t.Fatalf("expected stock 3 after decrement, got %d", reloaded.StockQuantity)
	}
}

func TestCreateOrderSnapshotSurvivesProductEdit(t *testing.T) {
	db := setupServiceTestDB(t, "order_snapshot")
	product := createTestProduct(t, db, "lamp", "Desk Lamp", "19.90", 10, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updates := map[string]interface{}{
		"name":  "Desk Lamp v2",
		"price": models.NewMoneyFromDecimal(decimal.RequireFromString("29.90")),
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	reloaded, err := svc.GetOrder(Identity{UserID: 1}, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(reloaded.Items))
	}
	item := reloaded.Items[0]
	if item.ProductName != "Desk Lamp" {
		t.Fatalf("expected snapshot name Desk Lamp, got %s", item.ProductName)
	}
	if !item.ProductPrice.Decimal.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("expected snapshot price 19.90, got %s", item.ProductPrice.Decimal)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupServiceTestDB(t, "order_empty_cart")
	svc := newTestOrderService(db, true)
	_, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected cart empty error, got: %v", err)
	}
}

func TestCreateOrderShippingIncomplete(t *testing.T) {
	db := setupServiceTestDB(t, "order_shipping")
	product := createTestProduct(t, db, "mug", "Coffee Mug", "8.00", 3, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	_, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "   ",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("expected shipping incomplete, got: %v", err)
	}

	// 电话为必填项，仅邮编可为空
	_, err = svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "   ",
		ShippingAddress: "1 Main St",
	})
	if !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("expected shipping incomplete for blank phone, got: %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order persisted, got %d", orderCount)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupServiceTestDB(t, "order_stock")
	cheap := createTestProduct(t, db, "sticker", "Sticker", "1.00", 10, true)
	scarce := createTestProduct(t, db, "limited", "Limited Print", "50.00", 1, true)
	createTestCartItem(t, db, 1, cheap.ID, 2)
	createTestCartItem(t, db, 1, scarce.ID, 2)

	svc := newTestOrderService(db, true)
	_, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order rows after rollback, got %d", orderCount)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 2 {
		t.Fatalf("expected cart untouched after rollback, got %d rows", cartCount)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, cheap.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 10 {
		t.Fatalf("expected stock rollback to 10, got %d", reloaded.StockQuantity)
	}
}

func TestCreateOrderStockCheckDisabled(t *testing.T) {
	db := setupServiceTestDB(t, "order_stock_off")
	product := createTestProduct(t, db, "preorder", "Preorder Item", "20.00", 0, true)
	createTestCartItem(t, db, 1, product.ID, 3)

	svc := newTestOrderService(db, false)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected total 60.00, got %s", order.TotalAmount.Decimal)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 0 {
		t.Fatalf("expected stock untouched, got %d", reloaded.StockQuantity)
	}
}

func TestGetOrderAccessControl(t *testing.T) {
	db := setupServiceTestDB(t, "order_access")
	product := createTestProduct(t, db, "book", "Notebook", "12.00", 5, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.GetOrder(Identity{UserID: 1}, order.ID); err != nil {
		t.Fatalf("owner access failed: %v", err)
	}
	if _, err := svc.GetOrder(Identity{UserID: 2}, order.ID); !errors.Is(err, ErrOrderAccessDenied) {
		t.Fatalf("expected access denied for other user, got: %v", err)
	}
	if _, err := svc.GetOrder(Identity{UserID: 99, IsAdmin: true}, order.ID); err != nil {
		t.Fatalf("admin access failed: %v", err)
	}
	// 不存在的订单对任何人都是 not found，而不是 access denied
	if _, err := svc.GetOrder(Identity{UserID: 2}, order.ID+100); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for missing order, got: %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := setupServiceTestDB(t, "order_cancel")
	product := createTestProduct(t, db, "poster", "Poster", "15.00", 4, true)
	createTestCartItem(t, db, 1, product.ID, 3)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(Identity{UserID: 1}, order.ID)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CanceledAt == nil {
		t.Fatalf("expected canceled_at set")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 4 {
		t.Fatalf("expected stock restored to 4, got %d", reloaded.StockQuantity)
	}
}

func TestCancelOrderRejectedAfterPayment(t *testing.T) {
	db := setupServiceTestDB(t, "order_cancel_paid")
	product := createTestProduct(t, db, "kit", "Starter Kit", "40.00", 5, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusPaymentConfirmed).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	if _, err := svc.CancelOrder(Identity{UserID: 1}, order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid, got: %v", err)
	}
}

func TestUpdateOrderStatusFullChain(t *testing.T) {
	db := setupServiceTestDB(t, "order_chain")
	product := createTestProduct(t, db, "watch", "Watch", "120.00", 5, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	admin := Identity{UserID: 99, IsAdmin: true}

	confirmed, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusPaymentConfirmed})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusPaymentConfirmed {
		t.Fatalf("expected payment_confirmed, got %s", confirmed.Status)
	}
	if confirmed.PaidAt == nil {
		t.Fatalf("expected paid_at set on confirmation")
	}

	if _, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusPreparing}); err != nil {
		t.Fatalf("preparing failed: %v", err)
	}

	tracking := "TRACK-001"
	shipped, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{
		Status:         constants.OrderStatusShipped,
		TrackingNumber: &tracking,
	})
	if err != nil {
		t.Fatalf("shipped failed: %v", err)
	}
	if shipped.TrackingNumber != "TRACK-001" {
		t.Fatalf("expected tracking number saved, got %q", shipped.TrackingNumber)
	}

	delivered, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("delivered failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}

	// 终态后不允许继续流转
	if _, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusCancelled}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid after delivered, got: %v", err)
	}
}

func TestUpdateOrderStatusRejectsSkip(t *testing.T) {
	db := setupServiceTestDB(t, "order_skip")
	product := createTestProduct(t, db, "pen", "Pen", "3.00", 5, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	admin := Identity{UserID: 99, IsAdmin: true}

	if _, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusShipped}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected skip transition rejected, got: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: "unknown"}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected unknown status rejected, got: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(Identity{UserID: 1}, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusPaymentConfirmed}); !errors.Is(err, ErrOrderAccessDenied) {
		t.Fatalf("expected non-admin rejected, got: %v", err)
	}
}

func TestUpdateOrderStatusCancelAfterShipmentKeepsStock(t *testing.T) {
	db := setupServiceTestDB(t, "order_cancel_shipped")
	product := createTestProduct(t, db, "chair", "Chair", "80.00", 6, true)
	createTestCartItem(t, db, 1, product.ID, 2)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusShipped).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	admin := Identity{UserID: 99, IsAdmin: true}
	cancelled, err := svc.UpdateOrderStatus(admin, order.ID, UpdateOrderStatusInput{Status: constants.OrderStatusCancelled})
	if err != nil {
		t.Fatalf("cancel shipped failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// 已发货订单取消不回补库存
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 4 {
		t.Fatalf("expected stock to stay at 4, got %d", reloaded.StockQuantity)
	}
}

func TestUpdateOrderItemStatus(t *testing.T) {
	db := setupServiceTestDB(t, "order_item_status")
	first := createTestProduct(t, db, "shirt", "Shirt", "20.00", 5, true)
	second := createTestProduct(t, db, "cap", "Cap", "10.00", 5, true)
	createTestCartItem(t, db, 1, first.ID, 1)
	createTestCartItem(t, db, 1, second.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	admin := Identity{UserID: 99, IsAdmin: true}
	itemID := order.Items[0].ID

	item, err := svc.UpdateOrderItemStatus(admin, order.ID, itemID, UpdateOrderStatusInput{Status: constants.OrderStatusPaymentConfirmed})
	if err != nil {
		t.Fatalf("update item status failed: %v", err)
	}
	if item.Status != constants.OrderStatusPaymentConfirmed {
		t.Fatalf("expected item payment_confirmed, got %s", item.Status)
	}

	tracking := "ITEM-TRACK-1"
	item, err = svc.UpdateOrderItemStatus(admin, order.ID, itemID, UpdateOrderStatusInput{TrackingNumber: &tracking})
	if err != nil {
		t.Fatalf("update item tracking failed: %v", err)
	}
	if item.TrackingNumber != "ITEM-TRACK-1" {
		t.Fatalf("expected item tracking saved, got %q", item.TrackingNumber)
	}

	if _, err := svc.UpdateOrderItemStatus(admin, order.ID, itemID, UpdateOrderStatusInput{Status: constants.OrderStatusDelivered}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected skip transition rejected, got: %v", err)
	}
	if _, err := svc.UpdateOrderItemStatus(admin, order.ID, itemID+100, UpdateOrderStatusInput{Status: constants.OrderStatusPaymentConfirmed}); !errors.Is(err, ErrOrderItemNotFound) {
		t.Fatalf("expected item not found, got: %v", err)
	}
}

func TestUpdateOrderItemStatusBlockedWhenOrderCancelled(t *testing.T) {
	db := setupServiceTestDB(t, "order_item_cancelled")
	product := createTestProduct(t, db, "bag", "Tote Bag", "18.00", 5, true)
	createTestCartItem(t, db, 1, product.ID, 1)

	svc := newTestOrderService(db, true)
	order, err := svc.CreateOrder(Identity{UserID: 1}, CreateOrderInput{
		ShippingName:    "Alice",
		ShippingPhone:   "555-0100",
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.CancelOrder(Identity{UserID: 1}, order.ID); err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}

	admin := Identity{UserID: 99, IsAdmin: true}
	if _, err := svc.UpdateOrderItemStatus(admin, order.ID, order.Items[0].ID, UpdateOrderStatusInput{Status: constants.OrderStatusPaymentConfirmed}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected item update blocked on cancelled order, got: %v", err)
	}
}
