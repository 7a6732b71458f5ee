package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// AppointmentRepository encapsulates appointment persistence. Conflict
// detection for concurrent bookings is owned by the store: a partial unique
// index on (resource_id, scheduled_at) over non-cancelled rows serializes
// racing inserts, so no check-then-insert is performed here.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByDate(ctx context.Context, resourceID int64, date time.Time) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

// Create inserts the appointment. A unique-index violation surfaces as
// AlreadyBooked; an unknown resource surfaces as NotFound via the foreign
// key. ScheduledAt is truncated to the minute before insertion.
func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (resource_id, scheduled_at, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	appointment.ScheduledAt = appointment.ScheduledAt.Truncate(time.Minute)
	if err := r.pool.QueryRow(ctx, query,
		appointment.ResourceID,
		appointment.ScheduledAt,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt); err != nil {
		return translateStoreError(err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	const query = `
        SELECT id, resource_id, scheduled_at, status, created_at, updated_at
        FROM appointments WHERE id=$1`

	var appointment domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.ResourceID,
		&appointment.ScheduledAt,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, translateStoreError(err)
	}
	return &appointment, nil
}

// ListByDate returns the non-cancelled appointments of a resource for one
// calendar day, ordered by time. The result is a consistent snapshot as of
// query time and is advisory only.
func (r *appointmentRepository) ListByDate(ctx context.Context, resourceID int64, date time.Time) ([]domain.Appointment, error) {
	const query = `
        SELECT id, resource_id, scheduled_at, status, created_at, updated_at
        FROM appointments
        WHERE resource_id=$1
          AND scheduled_at >= $2 AND scheduled_at < $3
          AND status <> 'CANCELLED'
        ORDER BY scheduled_at ASC`

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.pool.Query(ctx, query, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, translateStoreError(err)
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.ResourceID,
			&appointment.ScheduledAt,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, translateStoreError(err)
		}
		result = append(result, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}

// UpdateStatus sets the appointment status. Returns pgx.ErrNoRows when the
// appointment does not exist.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	const query = `
        UPDATE appointments SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return translateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
