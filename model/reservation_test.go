package model

import "testing"

func TestReservationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationPending, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationPending, ReservationPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, muốn %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsReservationStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "CANCELLED"} {
		if !IsReservationStatus(s) {
			t.Errorf("%s phải hợp lệ", s)
		}
	}
	if IsReservationStatus("DONE") || IsReservationStatus("") {
		t.Error("trạng thái lạ phải không hợp lệ")
	}
}
