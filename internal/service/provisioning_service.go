package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/mentorship-service/internal/auth"
	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/events"
	"github.com/spec-kit/mentorship-service/internal/repository"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// ProvisioningService coordinates subject lifecycle. A subject and its
// access grant are created and deleted as one atomic unit; the transaction
// boundary lives in the repository.
type ProvisioningService struct {
	subjects   repository.SubjectRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// ProvisioningDependencies bundles requirements for the service.
type ProvisioningDependencies struct {
	SubjectRepo repository.SubjectRepository
	Dispatcher  events.Dispatcher
	BcryptCost  int
	Logger      *zap.Logger
}

// SubjectCreateInput describes a provisioning request.
type SubjectCreateInput struct {
	Name               string
	Email              string
	Credential         string
	Role               domain.Role
	Course             *string
	Specialty          *string
	AcademicBackground *string
	BirthDate          *time.Time
}

// SubjectUpdateInput describes a partial update. Nil fields are left
// unchanged. An empty Credential means "keep the current credential";
// a rehash happens only when a non-empty replacement is supplied.
type SubjectUpdateInput struct {
	Name               *string
	Email              *string
	Credential         *string
	Course             *string
	Specialty          *string
	AcademicBackground *string
	BirthDate          *time.Time
}

// NewProvisioningService constructs the service.
func NewProvisioningService(deps ProvisioningDependencies) *ProvisioningService {
	return &ProvisioningService{
		subjects:   deps.SubjectRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

// CreateSubject hashes the credential, then inserts the subject row and its
// access grant in one transaction. Any failure after the subject insert
// rolls the whole unit back, so no subject ever exists without a grant.
func (s *ProvisioningService) CreateSubject(ctx context.Context, input SubjectCreateInput) (*domain.Subject, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Credential == "" {
		return nil, util.NewValidationError("name, email and credential are required", nil)
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, util.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	hash, err := auth.HashCredential(input.Credential, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	subject := &domain.Subject{
		Name:               strings.TrimSpace(input.Name),
		Email:              strings.TrimSpace(input.Email),
		CredentialHash:     hash,
		Course:             input.Course,
		Specialty:          input.Specialty,
		AcademicBackground: input.AcademicBackground,
		BirthDate:          input.BirthDate,
		Role:               input.Role,
	}
	if err := s.subjects.CreateWithGrant(ctx, subject); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSubjectProvisioned, events.SubjectProvisionedPayload{
		SubjectID: subject.ID,
		Email:     subject.Email,
		Role:      subject.Role,
	})

	s.logger.Info("subject provisioned",
		zap.String("subject_id", subject.ID),
		zap.String("role", string(subject.Role)),
	)
	return subject, nil
}

// UpdateSubject applies the supplied fields and returns the persisted
// representation. The credential hash is never echoed back by handlers.
func (s *ProvisioningService) UpdateSubject(ctx context.Context, id string, input SubjectUpdateInput) (*domain.Subject, error) {
	update := repository.SubjectUpdate{
		Name:               input.Name,
		Email:              input.Email,
		Course:             input.Course,
		Specialty:          input.Specialty,
		AcademicBackground: input.AcademicBackground,
		BirthDate:          input.BirthDate,
	}

	if input.Credential != nil && *input.Credential != "" {
		hash, err := auth.HashCredential(*input.Credential, s.bcryptCost)
		if err != nil {
			return nil, util.NewInternalError(err)
		}
		update.CredentialHash = &hash
	}

	if err := s.subjects.UpdateFields(ctx, id, update); err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("subject", map[string]any{"id": id})
		}
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("subject", map[string]any{"id": id})
		}
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes the subject and its access grant atomically and
// returns the rows affected. A missing subject is NotFound, never a silent
// no-op.
func (s *ProvisioningService) DeleteSubject(ctx context.Context, id string) (int64, error) {
	affected, err := s.subjects.DeleteWithGrant(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, util.NewNotFound("subject", map[string]any{"id": id})
		}
		return 0, err
	}

	s.publish(ctx, events.EventSubjectDeleted, events.SubjectDeletedPayload{
		SubjectID: id,
		Affected:  affected,
	})

	s.logger.Info("subject deleted",
		zap.String("subject_id", id),
		zap.Int64("affected", affected),
	)
	return affected, nil
}

// GetSubject loads one subject with its grant role.
func (s *ProvisioningService) GetSubject(ctx context.Context, id string) (*domain.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("subject", map[string]any{"id": id})
		}
		return nil, err
	}
	return subject, nil
}

// ListSubjects returns subjects joined with their grant role.
func (s *ProvisioningService) ListSubjects(ctx context.Context, limit, offset int) ([]domain.Subject, error) {
	return s.subjects.List(ctx, limit, offset)
}

func (s *ProvisioningService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
