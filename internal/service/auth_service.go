package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mentorship-service/internal/auth"
	"github.com/spec-kit/mentorship-service/internal/config"
	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/repository"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// AuthService exchanges a subject's email and credential for a short-lived
// token. Credentials travel with each login request; no session state is
// kept in the service.
type AuthService struct {
	subjects repository.SubjectRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, subjects repository.SubjectRepository) *AuthService {
	return &AuthService{
		subjects: subjects,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Login authenticates a subject by email and credential.
func (s *AuthService) Login(ctx context.Context, email, credential string) (*domain.Subject, string, time.Time, error) {
	subject, err := s.subjects.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.CompareCredential(subject.CredentialHash, credential); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(subject.ID, subject.Role)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}
	return subject, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
