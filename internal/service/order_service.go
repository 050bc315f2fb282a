package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/atelier-shop/internal/constants"
	"github.com/atelier-shop/internal/logger"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/queue"
	"github.com/atelier-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	queueClient  *queue.Client
	enforceStock bool
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, enforceStock bool) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		queueClient:  queueClient,
		enforceStock: enforceStock,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	ShippingName       string
	ShippingPhone      string
	ShippingAddress    string
	ShippingPostalCode string
}

// UpdateOrderStatusInput 管理端更新订单状态输入
type UpdateOrderStatusInput struct {
	Status         string
	TrackingNumber *string
}

// CreateOrder 将购物车转换为订单。
// 读取购物车、计算总额、写入订单与快照、扣减库存、清空购物车在同一事务内完成。
func (s *OrderService) CreateOrder(identity Identity, input CreateOrderInput) (*models.Order, error) {
	if identity.UserID == 0 {
		return nil, ErrInvalidInput
	}
	shippingName := strings.TrimSpace(input.ShippingName)
	shippingPhone := strings.TrimSpace(input.ShippingPhone)
	shippingAddress := strings.TrimSpace(input.ShippingAddress)
	if shippingName == "" || shippingPhone == "" || shippingAddress == "" {
		return nil, ErrShippingIncomplete
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:            generateOrderNo(),
		UserID:             identity.UserID,
		Status:             constants.OrderStatusPendingPayment,
		ShippingName:       shippingName,
		ShippingPhone:      shippingPhone,
		ShippingAddress:    shippingAddress,
		ShippingPostalCode: strings.TrimSpace(input.ShippingPostalCode),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		cartItems, err := cartRepo.ListByUser(identity.UserID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			product := cartItem.Product
			if product == nil || product.ID == 0 {
				return ErrProductNotFound
			}
			if !product.IsAvailable {
				return ErrProductNotAvailable
			}
			if cartItem.Quantity < 1 {
				return ErrCartQuantityTooLow
			}

			if s.enforceStock {
				affected, err := productRepo.DecrementStock(product.ID, cartItem.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrInsufficientStock
				}
			}

			lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
			total = total.Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductPrice: product.Price,
				Quantity:     cartItem.Quantity,
				Status:       constants.OrderStatusPendingPayment,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}

		order.TotalAmount = models.NewMoneyFromDecimal(total)
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		return cartRepo.ClearByUser(identity.UserID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCartEmpty),
			errors.Is(err, ErrCartQuantityTooLow),
			errors.Is(err, ErrProductNotFound),
			errors.Is(err, ErrProductNotAvailable),
			errors.Is(err, ErrInsufficientStock):
			return nil, err
		}
		logger.Errorw("order_create_failed", "user_id", identity.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// GetOrder 获取订单详情，仅订单所属用户或管理员可见。
// 订单不存在返回 ErrOrderNotFound；存在但无权访问返回 ErrOrderAccessDenied。
func (s *OrderService) GetOrder(identity Identity, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !identity.CanAccessOrderOf(order.UserID) {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// ListByUser 获取当前用户订单列表（按创建时间倒序）
func (s *OrderService) ListByUser(identity Identity, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if identity.UserID == 0 {
		return nil, 0, ErrInvalidInput
	}
	filter.UserID = identity.UserID
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(identity Identity, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !identity.IsAdmin {
		return nil, 0, ErrOrderAccessDenied
	}
	return s.orderRepo.ListAdmin(filter)
}

// UpdateOrderStatus 管理端更新订单状态（可同时更新物流单号）
func (s *OrderService) UpdateOrderStatus(identity Identity, orderID uint, input UpdateOrderStatusInput) (*models.Order, error) {
	if !identity.IsAdmin {
		return nil, ErrOrderAccessDenied
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := NormalizeOrderStatus(input.Status)
	if target == "" && input.TrackingNumber == nil {
		return nil, ErrOrderStatusInvalid
	}
	if target == "" {
		target = order.Status
	}
	if !IsKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = strings.TrimSpace(*input.TrackingNumber)
	}

	if target == order.Status {
		// 同状态写入仅刷新物流单号与更新时间
		if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
			return nil, ErrOrderUpdateFailed
		}
		return s.fetchUpdated(order.ID)
	}

	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	switch target {
	case constants.OrderStatusPaymentConfirmed:
		updates["paid_at"] = now
	case constants.OrderStatusCancelled:
		updates["canceled_at"] = now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}
		// 未发货订单取消时回补库存
		if target == constants.OrderStatusCancelled && s.enforceStock && orderShippedOrLater(order.Status) == false {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, ErrOrderUpdateFailed
	}

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, target); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", target,
				"error", err,
			)
		}
	}
	return s.fetchUpdated(order.ID)
}

// CancelOrder 用户取消自己的待支付订单
func (s *OrderService) CancelOrder(identity Identity, orderID uint) (*models.Order, error) {
	order, err := s.GetOrder(identity, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		updates := map[string]interface{}{
			"canceled_at": now,
			"updated_at":  now,
		}
		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
			return err
		}
		if s.enforceStock {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, ErrOrderUpdateFailed
	}

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, constants.OrderStatusCancelled); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", constants.OrderStatusCancelled,
				"error", err,
			)
		}
	}
	return s.fetchUpdated(order.ID)
}

// UpdateOrderItemStatus 管理端更新单个订单项状态（按同一状态机校验）
func (s *OrderService) UpdateOrderItemStatus(identity Identity, orderID, itemID uint, input UpdateOrderStatusInput) (*models.OrderItem, error) {
	if !identity.IsAdmin {
		return nil, ErrOrderAccessDenied
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}
	item, err := s.orderRepo.GetItemByIDAndOrder(itemID, orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}

	target := NormalizeOrderStatus(input.Status)
	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = strings.TrimSpace(*input.TrackingNumber)
	}
	if target != "" && target != item.Status {
		if !IsKnownOrderStatus(target) || !isTransitionAllowed(item.Status, target) {
			return nil, ErrOrderStatusInvalid
		}
		updates["status"] = target
	}

	if err := s.orderRepo.UpdateItem(item.ID, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	return s.orderRepo.GetItemByIDAndOrder(itemID, orderID)
}

func (s *OrderService) fetchUpdated(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return nil, ErrOrderFetchFailed
	}
	return order, nil
}

// orderShippedOrLater 发货后的取消不再回补库存
func orderShippedOrLater(status string) bool {
	switch NormalizeOrderStatus(status) {
	case constants.OrderStatusShipped, constants.OrderStatusDelivered:
		return true
	}
	return false
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("AT%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
