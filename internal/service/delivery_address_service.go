package service

import (
	"strings"
	"time"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"

	"gorm.io/gorm"
)

// DeliveryAddressService 收货地址服务
type DeliveryAddressService struct {
	repo repository.DeliveryAddressRepository
}

// NewDeliveryAddressService 创建收货地址服务
func NewDeliveryAddressService(repo repository.DeliveryAddressRepository) *DeliveryAddressService {
	return &DeliveryAddressService{repo: repo}
}

// DeliveryAddressInput 创建/更新地址输入
type DeliveryAddressInput struct {
	RecipientName string
	Phone         string
	Address       string
	PostalCode    string
	IsDefault     bool
}

// ListByUser 获取用户地址列表
func (s *DeliveryAddressService) ListByUser(userID uint) ([]models.DeliveryAddress, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(userID)
}

// Create 创建地址（设为默认时清除其他默认标记）
func (s *DeliveryAddressService) Create(userID uint, input DeliveryAddressInput) (*models.DeliveryAddress, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	recipient := strings.TrimSpace(input.RecipientName)
	addr := strings.TrimSpace(input.Address)
	if recipient == "" || addr == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	address := &models.DeliveryAddress{
		UserID:        userID,
		RecipientName: recipient,
		Phone:         strings.TrimSpace(input.Phone),
		Address:       addr,
		PostalCode:    strings.TrimSpace(input.PostalCode),
		IsDefault:     input.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefaultByUser(userID); err != nil {
				return err
			}
		}
		return repo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *DeliveryAddressService) Update(userID, addressID uint, input DeliveryAddressInput) (*models.DeliveryAddress, error) {
	address, err := s.repo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	address.RecipientName = strings.TrimSpace(input.RecipientName)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Address = strings.TrimSpace(input.Address)
	address.PostalCode = strings.TrimSpace(input.PostalCode)
	address.IsDefault = input.IsDefault
	address.UpdatedAt = time.Now()
	if address.RecipientName == "" || address.Address == "" {
		return nil, ErrInvalidInput
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefaultByUser(userID); err != nil {
				return err
			}
		}
		return repo.Update(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *DeliveryAddressService) Delete(userID, addressID uint) error {
	address, err := s.repo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.repo.DeleteByIDAndUser(addressID, userID)
}
