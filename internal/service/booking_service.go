package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/events"
	"github.com/spec-kit/mentorship-service/internal/repository"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// AvailabilityCache is the advisory free-slot cache consumed by the
// booking service. A nil cache is valid and means "always miss".
type AvailabilityCache interface {
	Get(ctx context.Context, resourceID int64, date time.Time) ([]string, bool)
	Set(ctx context.Context, resourceID int64, date time.Time, slots []string)
	Invalidate(ctx context.Context, resourceID int64, date time.Time)
}

// BookingService coordinates slot listing and appointment creation. It
// never performs a check-then-insert: the availability read is a UX hint
// and conflict detection belongs to the store's uniqueness constraint.
type BookingService struct {
	appointments repository.AppointmentRepository
	resources    repository.ResourceRepository
	cache        AvailabilityCache
	dispatcher   events.Dispatcher
	catalogue    []string
	logger       *zap.Logger
}

// BookingDependencies bundles requirements for the booking service.
type BookingDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	ResourceRepo    repository.ResourceRepository
	Cache           AvailabilityCache
	Dispatcher      events.Dispatcher
	SlotCatalogue   []string
	Logger          *zap.Logger
}

// AppointmentCreateInput describes a booking request.
type AppointmentCreateInput struct {
	ResourceID  int64
	ScheduledAt time.Time
	Status      domain.AppointmentStatus
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64, time.Time) ([]string, bool) { return nil, false }
func (noopCache) Set(context.Context, int64, time.Time, []string)        {}
func (noopCache) Invalidate(context.Context, int64, time.Time)           {}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	catalogue := append([]string{}, deps.SlotCatalogue...)
	sort.Strings(catalogue)
	cache := deps.Cache
	if cache == nil {
		cache = noopCache{}
	}
	return &BookingService{
		appointments: deps.AppointmentRepo,
		resources:    deps.ResourceRepo,
		cache:        cache,
		dispatcher:   deps.Dispatcher,
		catalogue:    catalogue,
		logger:       deps.Logger,
	}
}

// AvailableSlots returns the catalogue slots not occupied by a
// non-cancelled appointment on the given date, in ascending time order.
// An empty result means the day is fully booked; it is not an error. The
// result reflects a snapshot as of query time and is not a reservation.
func (s *BookingService) AvailableSlots(ctx context.Context, resourceID int64, date time.Time) ([]string, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("mentorship resource", map[string]any{"resource_id": resourceID})
		}
		return nil, err
	}

	if slots, ok := s.cache.Get(ctx, resourceID, date); ok {
		return slots, nil
	}

	booked, err := s.appointments.ListByDate(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{}, len(booked))
	for _, appointment := range booked {
		occupied[appointment.Slot()] = struct{}{}
	}

	free := make([]string, 0, len(s.catalogue))
	for _, slot := range s.catalogue {
		if _, taken := occupied[slot]; !taken {
			free = append(free, slot)
		}
	}

	s.cache.Set(ctx, resourceID, date, free)
	return free, nil
}

// CreateAppointment books a slot. Two concurrent calls for the same
// (resource, timestamp) cannot both succeed: the insert races on the
// store's partial unique index and the loser receives AlreadyBooked.
func (s *BookingService) CreateAppointment(ctx context.Context, input AppointmentCreateInput) (*domain.Appointment, error) {
	status := input.Status
	if status == "" {
		status = domain.AppointmentStatusPending
	}
	if status == domain.AppointmentStatusCancelled {
		return nil, util.NewValidationError("cannot create a cancelled appointment", nil)
	}

	resource, err := s.resources.GetByID(ctx, input.ResourceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("mentorship resource", map[string]any{"resource_id": input.ResourceID})
		}
		return nil, err
	}
	if !resource.Active {
		return nil, util.NewValidationError("mentorship resource is not bookable", nil)
	}

	appointment := &domain.Appointment{
		ResourceID:  input.ResourceID,
		ScheduledAt: input.ScheduledAt,
		Status:      status,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, appointment.ResourceID, appointment.ScheduledAt)
	s.publish(ctx, events.EventAppointmentBooked, events.AppointmentBookedPayload{
		AppointmentID: appointment.ID,
		ResourceID:    appointment.ResourceID,
		ScheduledAt:   appointment.ScheduledAt,
		Status:        appointment.Status,
	})

	s.logger.Info("appointment booked",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("resource_id", appointment.ResourceID),
		zap.Time("scheduled_at", appointment.ScheduledAt),
		zap.String("status", string(appointment.Status)),
	)
	return appointment, nil
}

// CancelAppointment marks the appointment cancelled, freeing the slot for
// rebooking. The row is never deleted; history is preserved.
func (s *BookingService) CancelAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.TransitionStatus(ctx, id, domain.AppointmentStatusCancelled)
}

// TransitionStatus applies a status change after validating it against the
// appointment lifecycle.
func (s *BookingService) TransitionStatus(ctx context.Context, id int64, next domain.AppointmentStatus) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(next) {
		return nil, util.NewValidationError("invalid status transition", map[string]any{
			"from": appointment.Status,
			"to":   next,
		})
	}

	if err := s.appointments.UpdateStatus(ctx, id, next); err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, err
	}
	appointment.Status = next

	if next == domain.AppointmentStatusCancelled {
		s.cache.Invalidate(ctx, appointment.ResourceID, appointment.ScheduledAt)
		s.publish(ctx, events.EventAppointmentCancelled, events.AppointmentCancelledPayload{
			AppointmentID: appointment.ID,
			ResourceID:    appointment.ResourceID,
			ScheduledAt:   appointment.ScheduledAt,
		})
	}

	s.logger.Info("appointment status changed",
		zap.Int64("appointment_id", id),
		zap.String("status", string(next)),
	)
	return appointment, nil
}

// ListResources returns the bookable offerings.
func (s *BookingService) ListResources(ctx context.Context) ([]domain.MentorshipResource, error) {
	return s.resources.ListActive(ctx)
}

func (s *BookingService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
