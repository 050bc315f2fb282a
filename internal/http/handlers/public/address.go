package public

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/service"
)

// DeliveryAddressRequest 收货地址请求
type DeliveryAddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address" binding:"required"`
	PostalCode    string `json:"postal_code"`
	IsDefault     bool   `json:"is_default"`
}

// ListDeliveryAddresses 获取收货地址列表
func (h *Handler) ListDeliveryAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.DeliveryAddressService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "address fetch failed", err)
		return
	}
	response.Success(c, addresses)
}

// CreateDeliveryAddress 新增收货地址
func (h *Handler) CreateDeliveryAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req DeliveryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.DeliveryAddressService.Create(uid, service.DeliveryAddressInput{
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "invalid address", nil)
			return
		}
		respondError(c, response.CodeInternal, "address create failed", err)
		return
	}
	response.Success(c, address)
}

// UpdateDeliveryAddress 更新收货地址
func (h *Handler) UpdateDeliveryAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	var req DeliveryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.DeliveryAddressService.Update(uid, uint(addressID), service.DeliveryAddressInput{
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			respondError(c, response.CodeNotFound, "address not found", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid address", nil)
		default:
			respondError(c, response.CodeInternal, "address update failed", err)
		}
		return
	}
	response.Success(c, address)
}

// DeleteDeliveryAddress 删除收货地址
func (h *Handler) DeleteDeliveryAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	if err := h.DeliveryAddressService.Delete(uid, uint(addressID)); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
