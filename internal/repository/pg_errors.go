package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// Postgres error codes relevant to integrity translation.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Constraint names as declared in /migrations. Integrity violations are
// translated into the matching business error instead of leaking the raw
// store error to callers.
const (
	constraintSubjectEmail    = "subjects_email_key"
	constraintGrantSubject    = "access_grants_subject_id_fkey"
	constraintGrantRole       = "access_grants_role_check"
	constraintGrantOnePerSubj = "access_grants_subject_id_key"
	constraintSlotActive      = "ux_appointments_resource_slot_active"
	constraintApptResource    = "appointments_resource_id_fkey"
	constraintApptStatus      = "appointments_status_check"
)

// translateStoreError maps pgx-level failures onto the service error
// taxonomy. pgx.ErrNoRows passes through untouched so repositories can
// decide which entity is missing.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return util.NewStoreUnavailable(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintSubjectEmail:
				return util.NewDuplicateEmail("")
			case constraintSlotActive:
				return util.NewAlreadyBooked(nil)
			case constraintGrantOnePerSubj:
				return util.NewValidationError("subject already has an access grant", nil)
			}
			return util.NewDomainError("CONFLICT", "conflicting record", 409, nil)
		case pgForeignKeyViolation:
			switch pgErr.ConstraintName {
			case constraintApptResource:
				return util.NewNotFound("mentorship resource", nil)
			case constraintGrantSubject:
				return util.NewNotFound("subject", nil)
			}
			return util.NewNotFound("referenced record", nil)
		case pgCheckViolation:
			return util.NewValidationError("value violates a store constraint",
				map[string]any{"constraint": pgErr.ConstraintName})
		}
	}

	if pgconn.Timeout(err) {
		return util.NewStoreUnavailable(err)
	}
	return util.NewStoreUnavailable(err)
}
