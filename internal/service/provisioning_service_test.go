package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/mentorship-service/internal/auth"
	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/repository"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// memSubjectRepo mimics the store's all-or-nothing semantics: when the
// grant step fails, nothing is persisted.
type memSubjectRepo struct {
	nextID    int
	subjects  map[string]*domain.Subject
	grants    map[string]*domain.AccessGrant
	failGrant bool
}

func newMemSubjectRepo() *memSubjectRepo {
	return &memSubjectRepo{
		subjects: map[string]*domain.Subject{},
		grants:   map[string]*domain.AccessGrant{},
	}
}

func (m *memSubjectRepo) CreateWithGrant(_ context.Context, subject *domain.Subject) error {
	for _, existing := range m.subjects {
		if existing.Email == subject.Email {
			return util.NewDuplicateEmail(subject.Email)
		}
	}
	if m.failGrant {
		// The grant insert failed; the transaction rolls back and the
		// subject row is gone with it.
		return util.NewStoreUnavailable(fmt.Errorf("access grant insert failed"))
	}

	m.nextID++
	subject.ID = fmt.Sprintf("subject-%d", m.nextID)
	subject.CreatedAt = time.Now()
	subject.UpdatedAt = subject.CreatedAt
	copied := *subject
	m.subjects[subject.ID] = &copied
	m.grants[subject.ID] = &domain.AccessGrant{
		ID:        fmt.Sprintf("grant-%d", m.nextID),
		SubjectID: subject.ID,
		Role:      subject.Role,
		CreatedAt: subject.CreatedAt,
	}
	return nil
}

func (m *memSubjectRepo) UpdateFields(_ context.Context, id string, update repository.SubjectUpdate) error {
	subject, ok := m.subjects[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.Name != nil {
		subject.Name = *update.Name
	}
	if update.Email != nil {
		subject.Email = *update.Email
	}
	if update.CredentialHash != nil {
		subject.CredentialHash = *update.CredentialHash
	}
	if update.Course != nil {
		subject.Course = update.Course
	}
	if update.Specialty != nil {
		subject.Specialty = update.Specialty
	}
	if update.AcademicBackground != nil {
		subject.AcademicBackground = update.AcademicBackground
	}
	if update.BirthDate != nil {
		subject.BirthDate = update.BirthDate
	}
	subject.UpdatedAt = time.Now()
	return nil
}

func (m *memSubjectRepo) DeleteWithGrant(_ context.Context, id string) (int64, error) {
	if _, ok := m.subjects[id]; !ok {
		return 0, pgx.ErrNoRows
	}
	var affected int64 = 1
	if _, ok := m.grants[id]; ok {
		delete(m.grants, id)
		affected++
	}
	delete(m.subjects, id)
	return affected, nil
}

func (m *memSubjectRepo) GetByID(_ context.Context, id string) (*domain.Subject, error) {
	subject, ok := m.subjects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *subject
	return &copied, nil
}

func (m *memSubjectRepo) GetByEmail(_ context.Context, email string) (*domain.Subject, error) {
	for _, subject := range m.subjects {
		if subject.Email == email {
			copied := *subject
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSubjectRepo) List(_ context.Context, _, _ int) ([]domain.Subject, error) {
	var result []domain.Subject
	for _, subject := range m.subjects {
		result = append(result, *subject)
	}
	return result, nil
}

func newTestProvisioningService(repo repository.SubjectRepository) *ProvisioningService {
	return NewProvisioningService(ProvisioningDependencies{
		SubjectRepo: repo,
		BcryptCost:  bcrypt.MinCost,
		Logger:      zap.NewNop(),
	})
}

func validCreateInput() SubjectCreateInput {
	return SubjectCreateInput{
		Name:       "Maria Silva",
		Email:      "maria@example.com",
		Credential: "s3cret",
		Role:       domain.RoleMonitor,
	}
}

func TestCreateSubjectProvisionsExactlyOneGrant(t *testing.T) {
	repo := newMemSubjectRepo()
	svc := newTestProvisioningService(repo)

	subject, err := svc.CreateSubject(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	if subject.ID == "" {
		t.Fatalf("expected assigned id")
	}

	grant, ok := repo.grants[subject.ID]
	if !ok {
		t.Fatalf("subject has no access grant")
	}
	if grant.Role != domain.RoleMonitor {
		t.Fatalf("expected MONITOR grant, got %s", grant.Role)
	}
	if len(repo.grants) != len(repo.subjects) {
		t.Fatalf("grant/subject cardinality broken: %d grants, %d subjects",
			len(repo.grants), len(repo.subjects))
	}

	// The stored credential is a hash verifiable only by recomputation.
	if subject.CredentialHash == "s3cret" {
		t.Fatalf("credential stored in plain form")
	}
	if err := auth.CompareCredential(subject.CredentialHash, "s3cret"); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestCreateSubjectValidation(t *testing.T) {
	svc := newTestProvisioningService(newMemSubjectRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		morph func(*SubjectCreateInput)
	}{
		{"missing name", func(in *SubjectCreateInput) { in.Name = "" }},
		{"missing email", func(in *SubjectCreateInput) { in.Email = "" }},
		{"missing credential", func(in *SubjectCreateInput) { in.Credential = "" }},
		{"bad role", func(in *SubjectCreateInput) { in.Role = "SUPERUSER" }},
	}
	for _, tc := range cases {
		input := validCreateInput()
		tc.morph(&input)
		if _, err := svc.CreateSubject(ctx, input); !util.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("%s: expected VALIDATION_FAILED, got %v", tc.name, err)
		}
	}
}

func TestCreateSubjectDuplicateEmail(t *testing.T) {
	svc := newTestProvisioningService(newMemSubjectRepo())
	ctx := context.Background()

	if _, err := svc.CreateSubject(ctx, validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateSubject(ctx, validCreateInput()); !util.IsCode(err, "DUPLICATE_EMAIL") {
		t.Fatalf("expected DUPLICATE_EMAIL, got %v", err)
	}
}

func TestCreateSubjectRollsBackWhenGrantFails(t *testing.T) {
	repo := newMemSubjectRepo()
	repo.failGrant = true
	svc := newTestProvisioningService(repo)

	if _, err := svc.CreateSubject(context.Background(), validCreateInput()); err == nil {
		t.Fatalf("expected failure when grant insert fails")
	}
	if _, err := repo.GetByEmail(context.Background(), "maria@example.com"); err != pgx.ErrNoRows {
		t.Fatalf("orphan subject survived the rollback")
	}
}

func TestUpdateSubjectEmptyCredentialLeavesHashUnchanged(t *testing.T) {
	repo := newMemSubjectRepo()
	svc := newTestProvisioningService(repo)
	ctx := context.Background()

	subject, err := svc.CreateSubject(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := repo.subjects[subject.ID].CredentialHash

	newName := "Maria S. Silva"
	empty := ""
	if _, err := svc.UpdateSubject(ctx, subject.ID, SubjectUpdateInput{
		Name:       &newName,
		Credential: &empty,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	after := repo.subjects[subject.ID].CredentialHash
	if before != after {
		t.Fatalf("empty credential must not change the stored hash")
	}
	if repo.subjects[subject.ID].Name != newName {
		t.Fatalf("name not updated")
	}
}

func TestUpdateSubjectNewCredentialRehashes(t *testing.T) {
	repo := newMemSubjectRepo()
	svc := newTestProvisioningService(repo)
	ctx := context.Background()

	subject, err := svc.CreateSubject(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := repo.subjects[subject.ID].CredentialHash

	replacement := "n3w-secret"
	if _, err := svc.UpdateSubject(ctx, subject.ID, SubjectUpdateInput{Credential: &replacement}); err != nil {
		t.Fatalf("update: %v", err)
	}

	after := repo.subjects[subject.ID].CredentialHash
	if before == after {
		t.Fatalf("new credential must change the stored hash")
	}
	if err := auth.CompareCredential(after, "s3cret"); err == nil {
		t.Fatalf("old plaintext still verifies after rehash")
	}
	if err := auth.CompareCredential(after, replacement); err != nil {
		t.Fatalf("new plaintext does not verify: %v", err)
	}
}

func TestUpdateSubjectUnknownID(t *testing.T) {
	svc := newTestProvisioningService(newMemSubjectRepo())

	name := "nobody"
	_, err := svc.UpdateSubject(context.Background(), "missing", SubjectUpdateInput{Name: &name})
	if !util.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteSubjectRemovesBothRows(t *testing.T) {
	repo := newMemSubjectRepo()
	svc := newTestProvisioningService(repo)
	ctx := context.Background()

	subject, err := svc.CreateSubject(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	affected, err := svc.DeleteSubject(ctx, subject.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows affected (subject + grant), got %d", affected)
	}
	if len(repo.subjects) != 0 || len(repo.grants) != 0 {
		t.Fatalf("rows survived deletion: %d subjects, %d grants", len(repo.subjects), len(repo.grants))
	}

	if _, err := svc.DeleteSubject(ctx, subject.ID); !util.IsCode(err, "NOT_FOUND") {
		t.Fatalf("deleting a missing subject must be NOT_FOUND, got %v", err)
	}
}
