package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	raw := errors.New("boom")
	domainErr := ToDomainError(raw)
	if domainErr.Code != "INTERNAL_ERROR" || domainErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected translation: %+v", domainErr)
	}
	if !errors.Is(domainErr, raw) {
		t.Fatal("wrapped cause must stay reachable via errors.Is")
	}
}

func TestToDomainErrorUnwrapsThroughChains(t *testing.T) {
	inner := NewDuplicateEmail("a@b.c")
	wrapped := fmt.Errorf("create subject: %w", inner)
	domainErr := ToDomainError(wrapped)
	if domainErr.Code != "DUPLICATE_EMAIL" || domainErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("lost the original error through wrapping: %+v", domainErr)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil must translate to nil")
	}
}

func TestIsCode(t *testing.T) {
	err := NewAlreadyBooked(nil)
	if !IsCode(err, "ALREADY_BOOKED") {
		t.Fatal("IsCode should match the carried code")
	}
	if IsCode(err, "NOT_FOUND") {
		t.Fatal("IsCode must not match a different code")
	}
	if IsCode(errors.New("plain"), "ALREADY_BOOKED") {
		t.Fatal("plain errors carry no code")
	}
	if IsCode(nil, "ALREADY_BOOKED") {
		t.Fatal("nil carries no code")
	}
}

func TestNewDuplicateEmailDetails(t *testing.T) {
	withEmail := ToDomainError(NewDuplicateEmail("a@b.c"))
	if withEmail.Details["email"] != "a@b.c" {
		t.Fatalf("expected email detail, got %v", withEmail.Details)
	}
	anonymous := ToDomainError(NewDuplicateEmail(""))
	if anonymous.Details != nil {
		t.Fatalf("no detail expected when email is unknown, got %v", anonymous.Details)
	}
}
