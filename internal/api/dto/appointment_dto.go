package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// AppointmentCreateRequest payload for booking a slot.
type AppointmentCreateRequest struct {
	ResourceID  int64  `json:"resource_id"`
	ScheduledAt string `json:"scheduled_at"`
	Status      string `json:"status,omitempty"`
}

// AppointmentResponse is the caller-facing appointment representation.
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	ResourceID  int64     `json:"resource_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Slot        string    `json:"slot"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAppointmentResponse maps a domain appointment onto the response shape.
func NewAppointmentResponse(appointment *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          appointment.ID,
		ResourceID:  appointment.ResourceID,
		ScheduledAt: appointment.ScheduledAt,
		Slot:        appointment.Slot(),
		Status:      string(appointment.Status),
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

// AppointmentStatusRequest payload for status transitions.
type AppointmentStatusRequest struct {
	Status string `json:"status"`
}

// ResourceResponse is the caller-facing mentorship resource representation.
type ResourceResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	MentorName string `json:"mentor_name"`
}

// ParseDate parses an ISO-8601 calendar date (no time component).
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return date, nil
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses an ISO-8601 datetime. The previous front-end sent
// zone-less timestamps like "2024-05-01T09:00:00", so those layouts are
// accepted alongside RFC 3339.
func ParseDateTime(raw string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", raw)
}
