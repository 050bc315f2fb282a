package service

import "errors"

// 业务错误定义，handler 层通过 error_mapping 映射为响应码
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("category has products")
	ErrSlugExists          = errors.New("slug already exists")

	ErrVariantNotFound     = errors.New("product variant not found")
	ErrVariantSKUExists    = errors.New("variant sku already exists")
	ErrMeasurementNotFound = errors.New("size measurement not found")

	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrCartQuantityTooLow = errors.New("cart quantity must be at least 1")
	ErrCartEmpty          = errors.New("cart is empty")

	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAccessDenied   = errors.New("order access denied")
	ErrOrderItemNotFound   = errors.New("order item not found")
	ErrOrderStatusInvalid  = errors.New("order status invalid")
	ErrOrderCreateFailed   = errors.New("order create failed")
	ErrOrderUpdateFailed   = errors.New("order update failed")
	ErrOrderFetchFailed    = errors.New("order fetch failed")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrShippingIncomplete  = errors.New("shipping information incomplete")

	ErrAddressNotFound = errors.New("delivery address not found")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrPasswordTooWeak    = errors.New("password too weak")
)
