package constants

// 订单状态常量
const (
	OrderStatusPendingPayment   = "pending_payment"
	OrderStatusPaymentConfirmed = "payment_confirmed"
	OrderStatusPreparing        = "preparing"
	OrderStatusShipped          = "shipped"
	OrderStatusDelivered        = "delivered"
	OrderStatusCancelled        = "cancelled"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "atelier"
)

// 分页默认值常量
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
