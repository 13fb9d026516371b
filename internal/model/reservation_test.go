package model

import "testing"

func TestReservationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		ok       bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationActive, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationConfirmed, ReservationActive, true},
		{ReservationActive, ReservationCompleted, true},
		{ReservationActive, ReservationCancelled, true},
		// never backward
		{ReservationConfirmed, ReservationPending, false},
		{ReservationActive, ReservationConfirmed, false},
		{ReservationCompleted, ReservationPending, false},
		// terminal states accept nothing
		{ReservationCompleted, ReservationCancelled, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		// no self-transitions, no unknown states
		{ReservationPending, ReservationPending, false},
		{ReservationPending, "archived", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestVehicleStatusValid(t *testing.T) {
	for _, s := range []VehicleStatus{VehicleAvailable, VehicleRented, VehicleMaintenance, VehicleInactive} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if VehicleStatus("scrapped").Valid() {
		t.Error("unknown vehicle status accepted")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PayCash, PayCard, PayTransfer} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if PaymentMethod("crypto").Valid() {
		t.Error("unknown payment method accepted")
	}
}
