package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	util "github.com/spec-kit/mentorship-service/pkg/util"
)

func TestTranslateStoreErrorIntegrityViolations(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			"duplicate email",
			&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintSubjectEmail},
			"DUPLICATE_EMAIL",
		},
		{
			"slot already booked",
			&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintSlotActive},
			"ALREADY_BOOKED",
		},
		{
			"second grant for one subject",
			&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintGrantOnePerSubj},
			"VALIDATION_FAILED",
		},
		{
			"unknown resource",
			&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraintApptResource},
			"NOT_FOUND",
		},
		{
			"grant without subject",
			&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraintGrantSubject},
			"NOT_FOUND",
		},
		{
			"bad role",
			&pgconn.PgError{Code: pgCheckViolation, ConstraintName: constraintGrantRole},
			"VALIDATION_FAILED",
		},
	}
	for _, tc := range cases {
		got := translateStoreError(tc.err)
		if !util.IsCode(got, tc.wantCode) {
			t.Errorf("%s: got %v, want code %s", tc.name, got, tc.wantCode)
		}
	}
}

func TestTranslateStoreErrorTimeoutsAreRetryable(t *testing.T) {
	got := translateStoreError(context.DeadlineExceeded)
	if !util.IsCode(got, "STORE_UNAVAILABLE") {
		t.Fatalf("deadline exceeded: got %v", got)
	}
	got = translateStoreError(errors.New("connection refused"))
	if !util.IsCode(got, "STORE_UNAVAILABLE") {
		t.Fatalf("connection failure: got %v", got)
	}
}

func TestTranslateStoreErrorPassesThroughNoRows(t *testing.T) {
	if got := translateStoreError(pgx.ErrNoRows); !errors.Is(got, pgx.ErrNoRows) {
		t.Fatalf("pgx.ErrNoRows must pass through, got %v", got)
	}
	if got := translateStoreError(nil); got != nil {
		t.Fatalf("nil must stay nil, got %v", got)
	}
}
