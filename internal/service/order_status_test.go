package service

import (
	"testing"

	"github.com/atelier-shop/internal/constants"
)

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusPendingPayment, constants.OrderStatusPaymentConfirmed, true},
		{constants.OrderStatusPendingPayment, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPendingPayment, constants.OrderStatusPreparing, false},
		{constants.OrderStatusPendingPayment, constants.OrderStatusShipped, false},
		{constants.OrderStatusPaymentConfirmed, constants.OrderStatusPreparing, true},
		{constants.OrderStatusPaymentConfirmed, constants.OrderStatusDelivered, false},
		{constants.OrderStatusPreparing, constants.OrderStatusShipped, true},
		{constants.OrderStatusPreparing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, true},
		{constants.OrderStatusShipped, constants.OrderStatusPreparing, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPendingPayment, false},
		{"  Shipped ", constants.OrderStatusDelivered, true},
		{"unknown", constants.OrderStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.current, tc.target); got != tc.want {
			t.Errorf("isTransitionAllowed(%q, %q) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestIsKnownOrderStatus(t *testing.T) {
	for _, status := range []string{
		constants.OrderStatusPendingPayment,
		constants.OrderStatusPaymentConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	} {
		if !IsKnownOrderStatus(status) {
			t.Errorf("expected %q to be known", status)
		}
	}
	if IsKnownOrderStatus("refunded") {
		t.Errorf("expected refunded to be unknown")
	}
	if !IsKnownOrderStatus(" DELIVERED ") {
		t.Errorf("expected normalization to accept mixed case")
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	if !IsTerminalOrderStatus(constants.OrderStatusDelivered) {
		t.Errorf("expected delivered terminal")
	}
	if !IsTerminalOrderStatus(constants.OrderStatusCancelled) {
		t.Errorf("expected cancelled terminal")
	}
	if IsTerminalOrderStatus(constants.OrderStatusShipped) {
		t.Errorf("expected shipped non-terminal")
	}
}
