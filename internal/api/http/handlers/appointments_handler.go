package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentorship-service/internal/api/dto"
	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/service"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// AppointmentsHandler exposes booking endpoints.
type AppointmentsHandler struct {
	booking           *service.BookingService
	defaultResourceID int64
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(booking *service.BookingService, defaultResourceID int64) *AppointmentsHandler {
	return &AppointmentsHandler{booking: booking, defaultResourceID: defaultResourceID}
}

// AvailableSlots handles GET /appointments/slots?date=YYYY-MM-DD.
// The returned list is advisory: booking correctness is enforced at
// creation time by the store, not by this read.
func (h *AppointmentsHandler) AvailableSlots(c *fiber.Ctx) error {
	rawDate := c.Query("date")
	if rawDate == "" {
		return util.NewValidationError("date query parameter is required", nil)
	}
	date, err := dto.ParseDate(rawDate)
	if err != nil {
		return util.NewValidationError(err.Error(), nil)
	}

	resourceID := h.defaultResourceID
	if raw := c.Query("resource_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return util.NewValidationError("invalid resource_id", nil)
		}
		resourceID = parsed
	}

	slots, err := h.booking.AvailableSlots(c.UserContext(), resourceID, date)
	if err != nil {
		return err
	}
	if slots == nil {
		slots = []string{}
	}
	return c.JSON(fiber.Map{"data": slots})
}

// Create handles POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AppointmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.ResourceID == 0 || req.ScheduledAt == "" {
		return util.NewValidationError("resource_id and scheduled_at are required", nil)
	}

	scheduledAt, err := dto.ParseDateTime(req.ScheduledAt)
	if err != nil {
		return util.NewValidationError(err.Error(), nil)
	}

	status := domain.AppointmentStatus("")
	if req.Status != "" {
		parsed, ok := domain.ParseAppointmentStatus(req.Status)
		if !ok {
			return util.NewValidationError("invalid status", map[string]any{"status": req.Status})
		}
		status = parsed
	}

	appointment, err := h.booking.CreateAppointment(c.UserContext(), service.AppointmentCreateInput{
		ResourceID:  req.ResourceID,
		ScheduledAt: scheduledAt,
		Status:      status,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAppointmentResponse(appointment),
	})
}

// Cancel handles POST /appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return util.NewValidationError("invalid appointment id", nil)
	}

	appointment, err := h.booking.CancelAppointment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// UpdateStatus handles PATCH /appointments/:id/status.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return util.NewValidationError("invalid appointment id", nil)
	}

	var req dto.AppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		return util.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	appointment, err := h.booking.TransitionStatus(c.UserContext(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// ListResources handles GET /resources.
func (h *AppointmentsHandler) ListResources(c *fiber.Ctx) error {
	resources, err := h.booking.ListResources(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		result = append(result, dto.ResourceResponse{
			ID:         resource.ID,
			Title:      resource.Title,
			MentorName: resource.MentorName,
		})
	}
	return c.JSON(fiber.Map{"data": result})
}
