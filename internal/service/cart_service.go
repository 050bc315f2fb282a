package service

import (
	"time"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Subtotal  models.Money    `json:"subtotal"`
	Product   *models.Product `json:"product"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车（仅返回商品仍然存在的行）
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			continue
		}
		details = append(details, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  product.Price.MulInt(item.Quantity),
			Product:   product,
		})
	}
	return details, nil
}

// AddItem 加入购物车，同一商品合并数量
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Quantity < 1 {
		return nil, ErrCartQuantityTooLow
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsAvailable {
		return nil, ErrProductNotAvailable
	}

	existing, err := s.cartRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + input.Quantity
		if err := s.cartRepo.UpdateQuantity(existing.ID, merged); err != nil {
			return nil, err
		}
		existing.Quantity = merged
		return existing, nil
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity 设置购物车项数量
func (s *CartService) SetQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrInvalidInput
	}
	if quantity < 1 {
		return nil, ErrCartQuantityTooLow
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidInput
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByIDAndUser(itemID, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	return s.cartRepo.ClearByUser(userID)
}
