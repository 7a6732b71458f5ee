package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// SubjectUpdate lists the columns an update request may touch. Only fields
// present in this allow-list ever reach the UPDATE statement; a nil field
// means "leave unchanged".
type SubjectUpdate struct {
	Name               *string
	Email              *string
	CredentialHash     *string
	Course             *string
	Specialty          *string
	AcademicBackground *string
	BirthDate          *time.Time
}

// SubjectRepository defines persistence access for subjects and their
// access grants. Creation and deletion are atomic across both tables.
type SubjectRepository interface {
	CreateWithGrant(ctx context.Context, subject *domain.Subject) error
	UpdateFields(ctx context.Context, id string, update SubjectUpdate) error
	DeleteWithGrant(ctx context.Context, id string) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subject, error)
	List(ctx context.Context, limit, offset int) ([]domain.Subject, error)
}

type subjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository returns a Postgres-backed implementation.
func NewSubjectRepository(pool *pgxpool.Pool) SubjectRepository {
	return &subjectRepository{pool: pool}
}

// CreateWithGrant inserts the subject row and its access grant in one
// transaction. If the grant insert fails for any reason the transaction
// rolls back, leaving no orphan subject.
func (r *subjectRepository) CreateWithGrant(ctx context.Context, subject *domain.Subject) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateStoreError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertSubject = `
        INSERT INTO subjects (name, email, credential_hash, course, specialty, academic_background, birth_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertSubject,
		subject.Name,
		subject.Email,
		subject.CredentialHash,
		subject.Course,
		subject.Specialty,
		subject.AcademicBackground,
		subject.BirthDate,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
		return translateStoreError(err)
	}

	const insertGrant = `
        INSERT INTO access_grants (subject_id, role)
        VALUES ($1, $2)`

	if _, err := tx.Exec(ctx, insertGrant, subject.ID, subject.Role); err != nil {
		return translateStoreError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return translateStoreError(err)
	}
	return nil
}

// UpdateFields applies only the supplied columns. Returns pgx.ErrNoRows
// when the subject does not exist.
func (r *subjectRepository) UpdateFields(ctx context.Context, id string, update SubjectUpdate) error {
	sets := []string{"updated_at=NOW()"}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.CredentialHash != nil {
		add("credential_hash", *update.CredentialHash)
	}
	if update.Course != nil {
		add("course", *update.Course)
	}
	if update.Specialty != nil {
		add("specialty", *update.Specialty)
	}
	if update.AcademicBackground != nil {
		add("academic_background", *update.AcademicBackground)
	}
	if update.BirthDate != nil {
		add("birth_date", *update.BirthDate)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE subjects SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteWithGrant removes the access grant and the subject in one
// transaction and reports the total rows affected. Returns pgx.ErrNoRows
// when no subject row matched.
func (r *subjectRepository) DeleteWithGrant(ctx context.Context, id string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, translateStoreError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	grantCmd, err := tx.Exec(ctx, `DELETE FROM access_grants WHERE subject_id=$1`, id)
	if err != nil {
		return 0, translateStoreError(err)
	}

	subjectCmd, err := tx.Exec(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	if err != nil {
		return 0, translateStoreError(err)
	}
	if subjectCmd.RowsAffected() == 0 {
		return 0, pgx.ErrNoRows
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, translateStoreError(err)
	}
	return grantCmd.RowsAffected() + subjectCmd.RowsAffected(), nil
}

const selectSubject = `
        SELECT s.id, s.name, s.email, s.credential_hash, s.course, s.specialty,
               s.academic_background, s.birth_date, g.role, s.created_at, s.updated_at
        FROM subjects s
        JOIN access_grants g ON g.subject_id = s.id`

func (r *subjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	return r.fetchSingle(ctx, selectSubject+` WHERE s.id=$1`, id)
}

func (r *subjectRepository) GetByEmail(ctx context.Context, email string) (*domain.Subject, error) {
	return r.fetchSingle(ctx, selectSubject+` WHERE s.email=$1`, email)
}

func (r *subjectRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Subject, error) {
	var subject domain.Subject
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Email,
		&subject.CredentialHash,
		&subject.Course,
		&subject.Specialty,
		&subject.AcademicBackground,
		&subject.BirthDate,
		&subject.Role,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, translateStoreError(err)
	}
	return &subject, nil
}

func (r *subjectRepository) List(ctx context.Context, limit, offset int) ([]domain.Subject, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s ORDER BY s.created_at DESC LIMIT %d OFFSET %d`, selectSubject, limit, offset)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateStoreError(err)
	}
	defer rows.Close()

	var result []domain.Subject
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Email,
			&subject.CredentialHash,
			&subject.Course,
			&subject.Specialty,
			&subject.AcademicBackground,
			&subject.BirthDate,
			&subject.Role,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		); err != nil {
			return nil, translateStoreError(err)
		}
		result = append(result, subject)
	}
	return result, translateStoreError(rows.Err())
}
