package public

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/repository"
	"github.com/atelier-shop/internal/service"
)

// CreateOrderRequest 下单请求，商品明细取自当前购物车
type CreateOrderRequest struct {
	ShippingName       string `json:"shipping_name" binding:"required"`
	ShippingPhone      string `json:"shipping_phone" binding:"required"`
	ShippingAddress    string `json:"shipping_address" binding:"required"`
	ShippingPostalCode string `json:"shipping_postal_code"`
}

// CreateOrder 将购物车转换为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.CreateOrder(identity, service.CreateOrderInput{
		ShippingName:       req.ShippingName,
		ShippingPhone:      req.ShippingPhone,
		ShippingAddress:    req.ShippingAddress,
		ShippingPostalCode: req.ShippingPostalCode,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	status := strings.TrimSpace(c.Query("status"))
	orderNo := strings.TrimSpace(c.Query("order_no"))

	orders, total, err := h.OrderService.ListByUser(identity, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   identity.UserID,
		Status:   status,
		OrderNo:  orderNo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrder(identity, uint(orderID))
	if err != nil {
		respondOrderReadError(c, err)
		return
	}

	response.Success(c, order)
}

// CancelOrder 用户取消待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(identity, uint(orderID))
	if err != nil {
		respondOrderCancelError(c, err)
		return
	}

	response.Success(c, order)
}
