package domain

import (
	"testing"
	"time"
)

func TestParseAppointmentStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want AppointmentStatus
		ok   bool
	}{
		{"PENDING", AppointmentStatusPending, true},
		{"CONFIRMED", AppointmentStatusConfirmed, true},
		{"CANCELLED", AppointmentStatusCancelled, true},
		{"COMPLETED", AppointmentStatusCompleted, true},
		{"PENDENTE", AppointmentStatusPending, true},
		{"CONFIRMADO", AppointmentStatusConfirmed, true},
		{"CANCELADO", AppointmentStatusCancelled, true},
		{"CONCLUIDO", AppointmentStatusCompleted, true},
		{"pending", "", false},
		{"", "", false},
		{"UNKNOWN", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseAppointmentStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseAppointmentStatus(%q) = (%q, %v), want (%q, %v)",
				tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAppointmentSlot(t *testing.T) {
	scheduled, err := time.Parse("2006-01-02T15:04:05", "2024-05-01T09:00:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	appointment := Appointment{ScheduledAt: scheduled}
	if slot := appointment.Slot(); slot != "09:00" {
		t.Fatalf("Slot() = %q, want 09:00", slot)
	}
}
