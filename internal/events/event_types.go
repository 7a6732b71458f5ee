package events

import (
	"time"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked    EventType = "appointment_booked"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventSubjectProvisioned   EventType = "subject_provisioned"
	EventSubjectDeleted       EventType = "subject_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	AppointmentID int64                    `json:"appointment_id"`
	ResourceID    int64                    `json:"resource_id"`
	ScheduledAt   time.Time                `json:"scheduled_at"`
	Status        domain.AppointmentStatus `json:"status"`
}

// AppointmentCancelledPayload payload.
type AppointmentCancelledPayload struct {
	AppointmentID int64     `json:"appointment_id"`
	ResourceID    int64     `json:"resource_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// SubjectProvisionedPayload payload.
type SubjectProvisionedPayload struct {
	SubjectID string      `json:"subject_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

// SubjectDeletedPayload payload.
type SubjectDeletedPayload struct {
	SubjectID string `json:"subject_id"`
	Affected  int64  `json:"affected"`
}
