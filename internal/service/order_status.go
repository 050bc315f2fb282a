package service

import (
	"strings"

	"github.com/atelier-shop/internal/constants"
)

// 订单状态机：主链路 pending_payment -> payment_confirmed -> preparing -> shipped -> delivered，
// 任意非终态可转 cancelled。delivered 与 cancelled 为终态。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusPaymentConfirmed: true,
		constants.OrderStatusCancelled:        true,
	},
	constants.OrderStatusPaymentConfirmed: {
		constants.OrderStatusPreparing: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

var knownOrderStatuses = map[string]bool{
	constants.OrderStatusPendingPayment:   true,
	constants.OrderStatusPaymentConfirmed: true,
	constants.OrderStatusPreparing:        true,
	constants.OrderStatusShipped:          true,
	constants.OrderStatusDelivered:        true,
	constants.OrderStatusCancelled:        true,
}

// NormalizeOrderStatus 规范化状态字符串
func NormalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsKnownOrderStatus 是否为合法状态值
func IsKnownOrderStatus(status string) bool {
	return knownOrderStatuses[NormalizeOrderStatus(status)]
}

// IsTerminalOrderStatus 是否为终态
func IsTerminalOrderStatus(status string) bool {
	normalized := NormalizeOrderStatus(status)
	return normalized == constants.OrderStatusDelivered || normalized == constants.OrderStatusCancelled
}

// isTransitionAllowed 校验状态流转是否合法
func isTransitionAllowed(current, target string) bool {
	targets, ok := allowedTransitions[NormalizeOrderStatus(current)]
	if !ok {
		return false
	}
	return targets[NormalizeOrderStatus(target)]
}
