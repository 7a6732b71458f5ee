package domain

import "time"

// AppointmentStatus represents lifecycle states for an appointment.
// Cancelled rows are kept for history and are excluded from the slot
// conflict rule.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// ParseAppointmentStatus normalizes a caller-supplied status. The previous
// system spoke Portuguese on the wire (PENDENTE, CANCELADO, ...), so those
// values are accepted as aliases.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	switch AppointmentStatus(raw) {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return AppointmentStatus(raw), true
	}
	switch raw {
	case "PENDENTE":
		return AppointmentStatusPending, true
	case "CONFIRMADO":
		return AppointmentStatusConfirmed, true
	case "CANCELADO":
		return AppointmentStatusCancelled, true
	case "CONCLUIDO":
		return AppointmentStatusCompleted, true
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// CanTransitionTo validates a status transition. Cancellation is allowed
// from any non-terminal state; completion only from confirmed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case AppointmentStatusCancelled:
		return true
	case AppointmentStatusConfirmed:
		return s == AppointmentStatusPending
	case AppointmentStatusCompleted:
		return s == AppointmentStatusConfirmed
	}
	return false
}

// Appointment models a booking of a mentorship resource at a specific
// timestamp. ScheduledAt is stored at minute resolution.
type Appointment struct {
	ID          int64
	ResourceID  int64
	ScheduledAt time.Time
	Status      AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slot returns the appointment's time of day as "HH:MM".
func (a Appointment) Slot() string {
	return a.ScheduledAt.Format("15:04")
}
