package worker

import "testing"

func TestResolveOrderStatusForEmailPreferPayload(t *testing.T) {
	if got := resolveOrderStatusForEmail("shipped", "preparing"); got != "shipped" {
		t.Fatalf("expected payload status to win, got %q", got)
	}
}

func TestResolveOrderStatusForEmailFallbackToOrder(t *testing.T) {
	if got := resolveOrderStatusForEmail("   ", "payment_confirmed"); got != "payment_confirmed" {
		t.Fatalf("expected fallback to order status, got %q", got)
	}
}
