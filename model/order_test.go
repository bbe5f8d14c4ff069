package model

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		// Đi tới trong pipeline
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderPreparing, true}, // nhảy cóc về phía trước
		{OrderConfirmed, OrderReady, true},
		{OrderReady, OrderDelivered, true},
		// Huỷ khi chưa kết thúc
		{OrderPending, OrderCancelled, true},
		{OrderReady, OrderCancelled, true},
		// Đi lùi
		{OrderPreparing, OrderConfirmed, false},
		{OrderDelivered, OrderPending, false},
		// Trạng thái kết thúc không đổi được nữa
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderCancelled, false},
		// Đứng yên không phải chuyển
		{OrderPending, OrderPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, muốn %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsOrderStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "PREPARING", "READY", "DELIVERED", "CANCELLED"} {
		if !IsOrderStatus(s) {
			t.Errorf("%s phải hợp lệ", s)
		}
	}
	for _, s := range []string{"SHIPPED", "pending", ""} {
		if IsOrderStatus(s) {
			t.Errorf("%s phải không hợp lệ", s)
		}
	}
}

func TestOrderStatusMessageCoversAll(t *testing.T) {
	statuses := []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing,
		OrderReady, OrderDelivered, OrderCancelled,
	}
	seen := map[string]bool{}
	for _, s := range statuses {
		msg := s.StatusMessage()
		if msg == "" {
			t.Errorf("%s thiếu thông điệp", s)
		}
		seen[msg] = true
	}
	if len(seen) != len(statuses) {
		t.Error("thông điệp các trạng thái phải khác nhau")
	}
}
