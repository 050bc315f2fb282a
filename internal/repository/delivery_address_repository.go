package repository

import (
	"errors"

	"github.com/atelier-shop/internal/models"

	"gorm.io/gorm"
)

// DeliveryAddressRepository 收货地址数据访问接口
type DeliveryAddressRepository interface {
	ListByUser(userID uint) ([]models.DeliveryAddress, error)
	GetByIDAndUser(id, userID uint) (*models.DeliveryAddress, error)
	Create(address *models.DeliveryAddress) error
	Update(address *models.DeliveryAddress) error
	DeleteByIDAndUser(id, userID uint) error
	ClearDefaultByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormDeliveryAddressRepository
}

// GormDeliveryAddressRepository GORM 实现
type GormDeliveryAddressRepository struct {
	db *gorm.DB
}

// NewDeliveryAddressRepository 创建收货地址仓库
func NewDeliveryAddressRepository(db *gorm.DB) *GormDeliveryAddressRepository {
	return &GormDeliveryAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryAddressRepository) WithTx(tx *gorm.DB) *GormDeliveryAddressRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryAddressRepository{db: tx}
}

// ListByUser 获取用户地址列表（默认地址排在前面）
func (r *GormDeliveryAddressRepository) ListByUser(userID uint) ([]models.DeliveryAddress, error) {
	var addresses []models.DeliveryAddress
	if err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByIDAndUser 获取用户名下的地址
func (r *GormDeliveryAddressRepository) GetByIDAndUser(id, userID uint) (*models.DeliveryAddress, error) {
	var address models.DeliveryAddress
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormDeliveryAddressRepository) Create(address *models.DeliveryAddress) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormDeliveryAddressRepository) Update(address *models.DeliveryAddress) error {
	return r.db.Save(address).Error
}

// DeleteByIDAndUser 删除用户名下的地址
func (r *GormDeliveryAddressRepository) DeleteByIDAndUser(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.DeliveryAddress{}).Error
}

// ClearDefaultByUser 清除用户当前默认地址标记
func (r *GormDeliveryAddressRepository) ClearDefaultByUser(userID uint) error {
	return r.db.Model(&models.DeliveryAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
