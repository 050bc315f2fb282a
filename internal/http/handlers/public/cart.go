package public

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/service"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 修改购物车项数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartProduct 购物车商品摘要
type CartProduct struct {
	ID            uint          `json:"id"`
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Price         models.Money  `json:"price"`
	OriginalPrice *models.Money `json:"original_price,omitempty"`
	ImageURL      string        `json:"image_url"`
	StockQuantity int           `json:"stock_quantity"`
	IsAvailable   bool          `json:"is_available"`
}

// CartItemResponse 购物车项响应
type CartItemResponse struct {
	ID        uint         `json:"id"`
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	Subtotal  models.Money `json:"subtotal"`
	Product   CartProduct  `json:"product"`
}

func buildCartItemResponse(item service.CartItemDetail) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Subtotal:  item.Subtotal,
	}
	if item.Product != nil {
		resp.Product = CartProduct{
			ID:            item.Product.ID,
			Slug:          item.Product.Slug,
			Name:          item.Product.Name,
			Price:         item.Product.Price,
			OriginalPrice: item.Product.OriginalPrice,
			ImageURL:      item.Product.ImageURL,
			StockQuantity: item.Product.StockQuantity,
			IsAvailable:   item.Product.IsAvailable,
		}
	}
	return resp
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := models.Money{}
	for _, item := range items {
		respItems = append(respItems, buildCartItemResponse(item))
		total = total.AddMoney(item.Subtotal)
	}

	response.Success(c, gin.H{"items": respItems, "total": total})
}

// AddCartItem 加入购物车，同商品合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.SetQuantity(uid, uint(itemID), req.Quantity)
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	if err := h.CartService.RemoveItem(uid, uint(itemID)); err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
