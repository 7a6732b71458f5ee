package service

import (
	"context"
	"testing"

	"github.com/spec-kit/mentorship-service/internal/config"
	"github.com/spec-kit/mentorship-service/internal/domain"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	repo := newMemSubjectRepo()
	provisioning := newTestProvisioningService(repo)
	ctx := context.Background()

	input := validCreateInput()
	input.Role = domain.RoleAdministrator
	if _, err := provisioning.CreateSubject(ctx, input); err != nil {
		t.Fatalf("create subject: %v", err)
	}

	authService := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
	}, repo)

	subject, token, exp, err := authService.Login(ctx, input.Email, input.Credential)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || exp.IsZero() {
		t.Fatalf("expected token and expiry")
	}

	claims, err := authService.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.SubjectID != subject.ID {
		t.Fatalf("token subject mismatch: %s != %s", claims.SubjectID, subject.ID)
	}
	if claims.Role != domain.RoleAdministrator {
		t.Fatalf("token role mismatch: %s", claims.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMemSubjectRepo()
	provisioning := newTestProvisioningService(repo)
	ctx := context.Background()

	if _, err := provisioning.CreateSubject(ctx, validCreateInput()); err != nil {
		t.Fatalf("create subject: %v", err)
	}

	authService := NewAuthService(config.AuthConfig{JWTSecret: "test-secret"}, repo)

	if _, _, _, err := authService.Login(ctx, "maria@example.com", "wrong"); !util.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for wrong credential, got %v", err)
	}
	if _, _, _, err := authService.Login(ctx, "ghost@example.com", "s3cret"); !util.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for unknown email, got %v", err)
	}
}
